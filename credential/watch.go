package credential

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/yaoapp/kun/log"
)

// Watch loads every credential file under root and keeps the registry in
// sync with the directory until ctx is done. Directories are watched when
// Watch returns.
func (r *Registry) Watch(ctx context.Context, root string) error {
	root, err := filepath.Abs(root)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	err = filepath.WalkDir(root, func(file string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			log.Info("[Watch] Watching: %s", file)
			return watcher.Add(file)
		}
		return nil
	})
	if err != nil {
		watcher.Close()
		return err
	}

	if _, err := r.LoadDir(root); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				log.Info("[Watch] %s exit", root)
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				r.handle(watcher, root, event)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Error("[Watch] Error: %s", err.Error())
			}
		}
	}()

	return nil
}

func (r *Registry) handle(watcher *fsnotify.Watcher, root string, event fsnotify.Event) {
	file := event.Name
	rel := strings.TrimPrefix(file, root)

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(file); err == nil && info.IsDir() {
			log.Info("[Watch] Watching: %s", rel)
			if err := watcher.Add(file); err != nil {
				log.Error("[Watch] %s %s", rel, err.Error())
			}
			if _, err := r.loadDir(root, file); err != nil {
				log.Error("[Watch] %s %s", rel, err.Error())
			}
			return
		}
	}

	if !IsDSL(file) {
		return
	}

	id := IDOf(root, file)
	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		log.Info("[Watch] REMOVE %s", rel)
		if err := r.Remove(id); err != nil {
			log.Warn("[Watch] %s", err.Error())
		}

	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		log.Info("[Watch] RELOAD %s", rel)
		if _, err := r.Load(file, id); err != nil {
			log.Error("[Watch] %s %s", rel, err.Error())
		}
	}
}
