package web

import (
	"embed"
	"io/fs"
)

//go:embed index.html static
var files embed.FS

// Index é a página inicial com a interface de chat
func Index() ([]byte, error) {
	return files.ReadFile("index.html")
}

// Static expõe os arquivos de static/ na raiz do FS
func Static() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
