package storage

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
)

// gdataObject groups every seesaw property inside the app data folder.
const gdataObject = "seesaw"

// GdataBlob keeps blobs in the platform's per-user application data
// location (XDG data dir, AppData, localStorage under wasm).
type GdataBlob struct {
	m *gdata.Manager
}

func OpenGdata(appName string) (*GdataBlob, error) {
	if appName == "" {
		appName = "seesaw"
	}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("storage: open gdata %q: %w", appName, err)
	}
	return &GdataBlob{m: m}, nil
}

func (g *GdataBlob) Get(key string) ([]byte, bool, error) {
	if !g.m.ObjectPropExists(gdataObject, key) {
		return nil, false, nil
	}
	data, err := g.m.LoadObjectProp(gdataObject, key)
	if err != nil {
		return nil, false, fmt.Errorf("storage: load %q: %w", key, err)
	}
	return data, true, nil
}

func (g *GdataBlob) Put(key string, data []byte) error {
	if err := g.m.SaveObjectProp(gdataObject, key, data); err != nil {
		return fmt.Errorf("storage: save %q: %w", key, err)
	}
	return nil
}

func (g *GdataBlob) Delete(key string) error {
	if !g.m.ObjectPropExists(gdataObject, key) {
		return nil
	}
	if err := g.m.DeleteObjectProp(gdataObject, key); err != nil {
		return fmt.Errorf("storage: delete %q: %w", key, err)
	}
	return nil
}

func (g *GdataBlob) Close() error { return nil }
