package models

// Media describes an uploaded asset. URL points at the blob store object;
// StorageKey is kept so the object can be deleted together with the record.
type Media struct {
	Meta
	Name       string `json:"name"`
	URL        string `json:"url"`
	Type       string `json:"type"`
	Size       int64  `json:"size"`
	StorageKey string `json:"storageKey,omitempty"`
}
