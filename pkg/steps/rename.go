package steps

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// The app keeps its projects in an IDBWrapper store keyed by timestamp.
const (
	projectDatabase  = "IDBWrapper-storage"
	projectDBVersion = 1
	projectStore     = "storage"
)

// renameScript rewrites glyph names in the newest project record. Names
// are applied by index to iconSets[0].selection, so they only land on the
// right glyphs if the app lists glyphs in upload order. The promise
// settles once the write transaction has finished.
const renameScript = `new Promise(function(resolve, reject) {
	const names = {{ toJson .Names }};
	const request = indexedDB.open({{ toJson .Database }}, {{ .Version }});
	request.onerror = function() { reject(request.error); };
	request.onsuccess = function() {
		const db = request.result;
		const tx = db.transaction({{ toJson .Store }}, 'readwrite');
		const store = tx.objectStore({{ toJson .Store }});
		tx.oncomplete = function() { resolve(names.length); };
		tx.onerror = function() { reject(tx.error); };
		const keys = store.getAllKeys();
		keys.onsuccess = function() {
			let latest;
			keys.result.forEach(function(key) {
				if (typeof key === 'number' && (latest === undefined || key > latest)) {
					latest = key;
				}
			});
			if (latest === undefined) {
				reject(new Error('no project record found'));
				return;
			}
			const main = store.get(latest);
			main.onsuccess = function() {
				try {
					const data = main.result;
					const selection = data.obj.iconSets[0].selection;
					for (let i = 0; i < names.length; i++) {
						selection[i].name = names[i];
					}
					store.put(data);
				} catch (e) {
					reject(e);
				}
			};
		};
	};
})`

var renameTemplate = template.Must(template.New("rename").Funcs(sprig.FuncMap()).Parse(renameScript))

func renderRenameScript(names []string) (string, error) {
	var buf bytes.Buffer
	err := renameTemplate.Execute(&buf, map[string]any{
		"Names":    names,
		"Database": projectDatabase,
		"Version":  projectDBVersion,
		"Store":    projectStore,
	})
	if err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return buf.String(), nil
}

type renameStep struct{}

func (renameStep) Name() string { return StepRename }

// Run rewrites the stored project out of band. The UI only shows the new
// names after a reload.
func (renameStep) Run(ctx context.Context, sc *StepContext) error {
	script, err := renderRenameScript(sc.Names)
	if err != nil {
		return fmt.Errorf("rendering rename script: %w", err)
	}

	var renamed int
	if err := sc.Session.Evaluate(ctx, script, &renamed); err != nil {
		return err
	}
	sc.logger().Info("changed names of icons", "count", renamed)
	return nil
}
