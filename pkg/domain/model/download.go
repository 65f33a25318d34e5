package model

// DownloadResult summarizes a batch run
type DownloadResult struct {
	Files     []string // Paths of written images
	Succeeded int
	Failed    int
}

// Add records the outcome of one item
func (x *DownloadResult) Add(path string, err error) {
	if err != nil {
		x.Failed++
		return
	}
	x.Files = append(x.Files, path)
	x.Succeeded++
}
