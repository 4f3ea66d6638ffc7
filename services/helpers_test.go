package services

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/Dosada05/tournament-badges/storage"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type recordingPublisher struct {
	mu     sync.Mutex
	events []Event
	rooms  []string
}

func (p *recordingPublisher) BroadcastToRoom(roomID string, message interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rooms = append(p.rooms, roomID)
	if ev, ok := message.(Event); ok {
		p.events = append(p.events, ev)
	}
}

type fakeUploader struct {
	uploaded map[string][]byte
	deleted  []string
	failWith error
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{uploaded: make(map[string][]byte)}
}

func (u *fakeUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	if u.failWith != nil {
		return nil, u.failWith
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return nil, err
	}
	u.uploaded[key] = buf.Bytes()
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *fakeUploader) Delete(ctx context.Context, key string) error {
	u.deleted = append(u.deleted, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.example.test/" + key
}
