// upload every staged attachment of a created story //
package handler

import (
	"fmt"
	"os"
	"sync"

	glb "github.com/OXOS/book-order-pivgeon/global_structs"
	lg "github.com/OXOS/book-order-pivgeon/logging"
	"github.com/OXOS/book-order-pivgeon/tracker"
)

// uploadAttachments reads and uploads all attachments concurrently and returns
// once every upload has finished. A failing read or upload gets recorded on
// the outcome but doesn't stop the sibling uploads.
func uploadAttachments(client *tracker.Client, story *glb.Story, out *glb.Outcome) {
	lg.Logf("uploading %d attachments\n", len(story.Attachments))
	var wg sync.WaitGroup
	var mu sync.Mutex

	fail := func(ref glb.FileRef, err error) {
		mu.Lock()
		out.Errors = append(out.Errors, fmt.Sprintf("attachment %s: %s", ref.Name, err.Error()))
		mu.Unlock()
	}

	for _, ref := range story.Attachments {
		wg.Add(1)
		go func(ref glb.FileRef) {
			defer wg.Done()
			data, err := os.ReadFile(ref.Path)
			if err != nil {
				fail(ref, err)
				return
			}
			if err := client.UploadAttachment(story.ProjectID, story.ID, ref.Name, data); err != nil {
				fail(ref, err)
			}
		}(ref)
	}
	wg.Wait()
}
