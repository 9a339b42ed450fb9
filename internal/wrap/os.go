package wrap

import (
	stdos "os"
)

type Oser interface {
	ReadFile(filename string) ([]byte, error)
	Stat(name string) (stdos.FileInfo, error)
}

type Os struct{}

func (Os) ReadFile(filename string) ([]byte, error) {
	return stdos.ReadFile(filename)
}

func (Os) Stat(name string) (stdos.FileInfo, error) {
	return stdos.Stat(name)
}
