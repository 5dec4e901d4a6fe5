/**
# Copyright (c) 2024, NVIDIA CORPORATION.  All rights reserved.
#
# Licensed under the Apache License, Version 2.0 (the "License");
# you may not use this file except in compliance with the License.
# You may obtain a copy of the License at
#
#     http://www.apache.org/licenses/LICENSE-2.0
#
# Unless required by applicable law or agreed to in writing, software
# distributed under the License is distributed on an "AS IS" BASIS,
# WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
# See the License for the specific language governing permissions and
# limitations under the License.
**/

package watch

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"k8s.io/klog/v2"
)

// Signals creates a channel that receives the specified OS signals.
func Signals(sigs ...os.Signal) chan os.Signal {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, sigs...)

	return sigChan
}

// FileWatcher reports changes to a fixed set of files.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	files   map[string]bool
	changed chan string
	done    chan struct{}
}

// Files creates a FileWatcher for the specified files. The parent directory
// of each file is watched so that editors which replace the file on save are
// also detected.
func Files(files ...string) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create FS watcher: %w", err)
	}

	w := &FileWatcher{
		watcher: watcher,
		files:   make(map[string]bool),
		changed: make(chan string, 1),
		done:    make(chan struct{}),
	}

	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to resolve %v: %w", f, err)
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	for d := range dirs {
		if err := watcher.Add(d); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to watch %v: %w", d, err)
		}
	}

	go w.run()

	return w, nil
}

// Changed returns a channel that receives the path of a watched file each
// time it is written, created or renamed into place.
func (w *FileWatcher) Changed() <-chan string {
	return w.changed
}

// Close stops the watcher.
func (w *FileWatcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}

func (w *FileWatcher) run() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.files[filepath.Clean(event.Name)] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			// A file moved away is reported once its replacement is created.
			if _, err := os.Stat(event.Name); err != nil {
				continue
			}
			// Coalesce bursts of events; one pending notification is enough.
			select {
			case w.changed <- event.Name:
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			klog.Warningf("inotify: %v", err)
		}
	}
}
