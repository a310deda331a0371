package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
)

// Serves data/<category>.json at GET /api/<category>/ so the proxy can be
// developed offline against a fixed catalog snapshot.
func main() {
	addr := flag.String("addr", ":9090", "listen address")
	dir := flag.String("dir", "data", "directory holding <category>.json files")
	flag.Parse()

	categories := []string{"people", "planets", "starships", "vehicles", "species", "films"}

	for _, cat := range categories {
		path := filepath.Join(*dir, cat+".json")
		route := fmt.Sprintf("/api/%s/", cat)

		http.HandleFunc(route, func(w http.ResponseWriter, r *http.Request) {
			b, err := os.ReadFile(path)
			if err != nil {
				http.Error(w, "cannot read "+path+": "+err.Error(), http.StatusInternalServerError)
				return
			}
			// validate JSON so a bad file doesn't silently break the proxy
			var tmp any
			if err := json.Unmarshal(b, &tmp); err != nil {
				http.Error(w, path+" invalid JSON: "+err.Error(), http.StatusInternalServerError)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write(b)
		})
	}

	log.Printf("[mock-upstream] serving %s/*.json on %s", *dir, *addr)
	log.Fatal(http.ListenAndServe(*addr, nil))
}
