package http

import (
	"io/fs"
	"net/http"
)

// fileOnlyFS hides directories so the file server never renders a listing.
type fileOnlyFS struct {
	http.FileSystem
}

func (f fileOnlyFS) Open(name string) (http.File, error) {
	file, err := f.FileSystem.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = file.Close()
		return nil, fs.ErrNotExist
	}
	return file, nil
}

// uploadsHandler serves stored attachments read-only under prefix.
func uploadsHandler(prefix, dir string) http.Handler {
	return http.StripPrefix(prefix, http.FileServer(fileOnlyFS{http.Dir(dir)}))
}
