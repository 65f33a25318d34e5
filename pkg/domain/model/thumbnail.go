package model

import "fmt"

// ThumbnailRequest is one element of a thumbnails batch request
type ThumbnailRequest struct {
	Format    string `json:"format"`
	RequestID string `json:"requestId"`
	Size      string `json:"size"`
	TargetID  int64  `json:"targetId"`
	Token     string `json:"token"`
	Type      string `json:"type"`
}

// NewAssetThumbnailRequest builds the 420x420 PNG request for an asset
func NewAssetThumbnailRequest(targetID int64) ThumbnailRequest {
	return ThumbnailRequest{
		Format:    "png",
		RequestID: fmt.Sprintf("%d::Asset:420x420:png:regular", targetID),
		Size:      "420x420",
		TargetID:  targetID,
		Token:     "",
		Type:      "Asset",
	}
}

// ThumbnailBatchResponse is the body returned by the thumbnails batch endpoint
type ThumbnailBatchResponse struct {
	Data []ThumbnailResult `json:"data"`
}

// ThumbnailResult is one entry of ThumbnailBatchResponse
type ThumbnailResult struct {
	RequestID string `json:"requestId"`
	TargetID  int64  `json:"targetId"`
	State     string `json:"state"`
	ImageURL  string `json:"imageUrl"`
}

// FirstImageURL returns data[0].imageUrl, or "" when absent
func (x *ThumbnailBatchResponse) FirstImageURL() string {
	if x == nil || len(x.Data) == 0 {
		return ""
	}
	return x.Data[0].ImageURL
}
