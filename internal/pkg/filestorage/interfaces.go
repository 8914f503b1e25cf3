// Package filestorage keeps note posters and profile pictures.
package filestorage

import "mime/multipart"

// FileStorage saves uploads and hands back the URL they are served under.
type FileStorage interface {
	SaveFileWithPath(header *multipart.FileHeader, dir string) (string, error)
	// DeleteFile accepts exactly what SaveFileWithPath returned.
	DeleteFile(fileURL string) error
}
