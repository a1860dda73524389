package storage

import "context"

// CompletionArchive stores raw model completions for offline inspection.
// Archiving is best-effort; plan generation never fails because of it.
type CompletionArchive interface {
	ArchiveCompletion(ctx context.Context, objectKey string, payload []byte) error
}

// noopArchive discards everything. Used when no bucket is configured.
type noopArchive struct{}

// NewNoopArchive returns an archive that drops all payloads.
func NewNoopArchive() CompletionArchive {
	return noopArchive{}
}

func (noopArchive) ArchiveCompletion(ctx context.Context, objectKey string, payload []byte) error {
	return nil
}
