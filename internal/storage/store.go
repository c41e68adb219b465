// Package storage provides the narrow remote-object interface the pipeline
// needs: existence probe, full read, full overwrite. There is no append
// primitive; appending is the ledger's read-modify-write protocol.
package storage

import "context"

// ObjectInfo is the result of a metadata probe. ETag is whatever version
// marker the backend exposes, empty if none.
type ObjectInfo struct {
	Exists bool
	Size   int64
	ETag   string
}

// ObjectStore is implemented by remote object backends. Write overwrites the
// whole object. The ifMatch argument is the seam for optimistic concurrency:
// a conditional-write implementation may reject the write when the stored
// version no longer matches. The plain S3 writer ignores it and is
// last-writer-wins, which the ledger documents as a single-writer
// precondition.
type ObjectStore interface {
	Probe(ctx context.Context, key string) (ObjectInfo, error)
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, body []byte, contentType, ifMatch string) error
}
