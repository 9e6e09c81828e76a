package domain

// JobSnapshot is one fetched job detail, normalised, together with any
// sector templates fetched to fill in missing required types.
type JobSnapshot struct {
	JobID     string
	Job       NormalizedJob
	Photos    []PhotoRecord
	Templates map[int]SectorTemplate
}

// Template returns the template fetched for sector n.
func (s *JobSnapshot) Template(n int) (*SectorTemplate, bool) {
	if s == nil {
		return nil, false
	}
	t, ok := s.Templates[n]
	if !ok {
		return nil, false
	}
	return &t, true
}

// FetchTicket identifies one fetch issued by a preview session. A result
// is only applied while its ticket is current.
type FetchTicket struct {
	Generation uint64
	JobID      string
}
