package model

// Settings is the content of the settings file
type Settings struct {
	Cookie SessionCookie `json:"cookie,omitempty"`
}

// HasCookie reports whether a cookie has been saved
func (x *Settings) HasCookie() bool {
	return x != nil && x.Cookie != ""
}
