package contracts

import (
	"path/filepath"
	"strings"
	"time"
)

// Contract lifecycle states.
const (
	StatusDraft  = "DRAFT"
	StatusFinal  = "FINAL"
	StatusSigned = "SIGNED"
)

// Contract is an uploaded document tracked through planning status and a
// versioned file history. Versions only ever grow; the latest version is the
// one with the highest number.
type Contract struct {
	ID        string
	EventID   string
	Title     string
	Status    string
	Versions  []Version
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Version points one contract revision at its stored file.
type Version struct {
	VersionNumber int       `json:"versionNumber"`
	FilePath      string    `json:"filePath"`
	CreatedAt     time.Time `json:"createdAt"`
}

// LatestVersion returns the version with the highest number.
func (c *Contract) LatestVersion() (Version, bool) {
	var latest Version
	found := false
	for _, v := range c.Versions {
		if !found || v.VersionNumber > latest.VersionNumber {
			latest = v
			found = true
		}
	}
	return latest, found
}

// AppendVersion adds a new version pointing at filePath, numbered after the
// current latest.
func (c *Contract) AppendVersion(filePath string, now time.Time) Version {
	next := 1
	if latest, ok := c.LatestVersion(); ok {
		next = latest.VersionNumber + 1
	}
	v := Version{VersionNumber: next, FilePath: filePath, CreatedAt: now}
	c.Versions = append(c.Versions, v)
	c.UpdatedAt = now
	return v
}

// TitleFromFileName derives the contract title from the uploaded file name by
// dropping a trailing .pdf/.docx/.doc extension, case-insensitively.
func TitleFromFileName(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf", ".docx", ".doc":
		return fileName[:len(fileName)-len(filepath.Ext(fileName))]
	}
	return fileName
}
