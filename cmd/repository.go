package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/krisalay/object-cache/object"
	"github.com/krisalay/object-cache/session"
)

// seedRepository fills a repository with one folder holding n documents and
// returns the folder path and document ids.
func seedRepository(repo *session.MemoryRepository, n int) (string, []string, error) {
	now := time.Now()
	folderID := uuid.NewString()
	folderPath := "/demo"

	err := repo.Store(&object.Data{
		BaseType: object.Folder,
		Properties: map[string]any{
			object.PropObjectID:     folderID,
			object.PropObjectTypeID: string(object.Folder),
			object.PropName:         "demo",
			object.PropPath:         folderPath,
			"cmis:creationDate":     now,
		},
	})
	if err != nil {
		return "", nil, err
	}

	ids := make([]string, n)
	for i := range ids {
		ids[i] = uuid.NewString()
		err := repo.Store(&object.Data{
			BaseType: object.Document,
			Properties: map[string]any{
				object.PropObjectID:        ids[i],
				object.PropObjectTypeID:    string(object.Document),
				object.PropName:            fmt.Sprintf("doc-%d.txt", i),
				"cmis:contentStreamLength": int64(1024 * (i + 1)),
				"cmis:isLatestVersion":     true,
				"cmis:creationDate":        now,
			},
		})
		if err != nil {
			return "", nil, err
		}
	}
	return folderPath, ids, nil
}
