package dedup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"StockSentry/internal/model"
)

// FileHistory is a HistoryStore backed by a JSON file mapping
// "YYYY-MM-DD_TYPE" keys to RFC3339 timestamps. Entries for past days are
// never read again (the key embeds the day) and are simply left behind.
type FileHistory struct {
	path    string
	mu      sync.Mutex
	entries map[string]time.Time
}

// NewFileHistory loads the history file, starting empty if it does not exist.
func NewFileHistory(path string) (*FileHistory, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}
	h := &FileHistory{path: path, entries: make(map[string]time.Time)}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return h, nil
		}
		return nil, fmt.Errorf("read alert history: %w", err)
	}
	if err := json.Unmarshal(data, &h.entries); err != nil {
		return nil, fmt.Errorf("parse alert history: %w", err)
	}
	return h, nil
}

func historyKey(day string, alertType model.AlertType) string {
	return day + "_" + string(alertType)
}

func (h *FileHistory) GetLastSent(day string, alertType model.AlertType) (time.Time, bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	t, ok := h.entries[historyKey(day, alertType)]
	return t, ok, nil
}

func (h *FileHistory) SetLastSent(day string, alertType model.AlertType, sentAt time.Time) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries[historyKey(day, alertType)] = sentAt
	return h.save()
}

func (h *FileHistory) save() error {
	data, err := json.MarshalIndent(h.entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(h.path, data, 0644)
}
