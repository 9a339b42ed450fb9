package wrap

import (
	stdxdg "github.com/adrg/xdg"
)

type Xdger interface {
	ConfigFile(relPath string) (string, error)
}

type Xdg struct{}

func (Xdg) ConfigFile(relPath string) (string, error) {
	return stdxdg.ConfigFile(relPath)
}
