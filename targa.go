/*
Package targa is a library for keeping a store of textures decoded from
Truevision TGA files, ready to hand to a renderer.
*/
package targa

import "log"

// Library ties a texture database to a logger.
type Library struct {
	db     *TextureDB
	logger *log.Logger
}

// New returns a Library using db, logging progress to logger.
func New(db *TextureDB, logger *log.Logger) *Library {
	return &Library{
		db:     db,
		logger: logger,
	}
}
