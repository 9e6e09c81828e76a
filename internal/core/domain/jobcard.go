package domain

import "slices"

// SectorStatus pairs a sector with its reported status.
type SectorStatus struct {
	Sector int    `json:"sector" yaml:"sector"`
	Status string `json:"status" yaml:"status"`
}

// JobCard is the list-view summary of a job.
type JobCard struct {
	ID          string         `json:"id" yaml:"id"`
	SiteID      string         `json:"siteId,omitempty" yaml:"siteId,omitempty"`
	WorkerPhone string         `json:"workerPhone,omitempty" yaml:"workerPhone,omitempty"`
	Status      string         `json:"status,omitempty" yaml:"status,omitempty"`
	Sectors     []SectorStatus `json:"sectors" yaml:"sectors"`
	AllDone     bool           `json:"allDone" yaml:"allDone"`
	DoneSectors []int          `json:"doneSectors" yaml:"doneSectors"`
	CreatedAt   string         `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
}

// CanExportJob reports whether the whole-job archive may be exported.
func (c JobCard) CanExportJob() bool {
	return c.AllDone
}

// CanExportSector reports whether sector n may be exported on its own.
func (c JobCard) CanExportSector(n int) bool {
	return slices.Contains(c.DoneSectors, n)
}

// User is the authenticated dashboard user.
type User struct {
	Username string `json:"username"`
}
