// Package notify provides filesystem notifications for configuration that
// can change while the server is running. Currently that is the persona
// file: edits are picked up and swapped into the live chat engine without a
// restart.
package notify

import (
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// PersonaWatcher watches a persona file and invokes a reload callback when
// it changes. The parent directory is watched rather than the file itself:
// most editors replace files atomically, which would otherwise drop the
// watch after the first save.
type PersonaWatcher struct {
	path     string
	callback func(path string)
	watcher  *fsnotify.Watcher
	done     chan struct{}
}

// NewPersonaWatcher creates a watcher for the given persona file. The
// callback runs on the watcher goroutine and receives the file path.
func NewPersonaWatcher(path string, callback func(path string)) *PersonaWatcher {
	return &PersonaWatcher{
		path:     filepath.Clean(path),
		callback: callback,
		done:     make(chan struct{}),
	}
}

// Start begins watching. Call Stop to clean up.
func (pw *PersonaWatcher) Start() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(pw.path)); err != nil {
		_ = w.Close()
		return err
	}
	pw.watcher = w

	go pw.loop()
	log.Printf("notify: watching %s for persona changes", pw.path)
	return nil
}

// Stop shuts down the watcher and waits for the loop to exit.
func (pw *PersonaWatcher) Stop() {
	if pw.watcher == nil {
		return
	}
	_ = pw.watcher.Close()
	<-pw.done
}

func (pw *PersonaWatcher) loop() {
	defer close(pw.done)
	for {
		select {
		case evt, ok := <-pw.watcher.Events:
			if !ok {
				return
			}
			if !pw.isPersonaEvent(evt) {
				continue
			}
			log.Printf("notify: persona file changed (%s)", evt.Op)
			if pw.callback != nil {
				pw.callback(pw.path)
			}
		case err, ok := <-pw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("notify: watcher error: %v", err)
		}
	}
}

// isPersonaEvent reports whether the event is a content change of the
// watched file. Chmod-only events are ignored.
func (pw *PersonaWatcher) isPersonaEvent(evt fsnotify.Event) bool {
	if filepath.Clean(evt.Name) != pw.path {
		return false
	}
	return evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}
