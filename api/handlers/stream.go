package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/barangaycms/barangay-cms-api/api"
	"github.com/barangaycms/barangay-cms-api/config"
	"github.com/barangaycms/barangay-cms-api/databases"
	"github.com/barangaycms/barangay-cms-api/models"
)

// streamPollInterval is how often the complaints snapshot is re-read.
const streamPollInterval = time.Second

// Stream serves the server-sent-events complaint feed
type Stream struct {
	DB databases.ComplaintDatabase
}

// ComplaintStreamHandler emits the full complaints snapshot as an SSE data
// event whenever its serialized form changes. The loop runs until the client
// disconnects. There are no resume tokens; reconnecting clients get the
// current snapshot on the first change.
func (h Stream) ComplaintStreamHandler(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		config.ErrorStatus("streaming unsupported", http.StatusInternalServerError, w, fmt.Errorf("response writer is not a flusher"))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ticker := time.NewTicker(streamPollInterval)
	defer ticker.Stop()

	var last []byte
	for {
		snapshot, err := h.snapshot(r)
		if err != nil {
			zap.S().Warnw("failed to read complaint snapshot", "error", err)
		} else if !bytes.Equal(snapshot, last) {
			fmt.Fprintf(w, "data: %s\n\n", snapshot)
			flusher.Flush()
			last = snapshot
		}

		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
	}
}

func (h Stream) snapshot(r *http.Request) ([]byte, error) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	complaints, err := h.DB.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "submitted_date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	if complaints == nil {
		complaints = []models.Complaint{}
	}
	return json.Marshal(complaints)
}
