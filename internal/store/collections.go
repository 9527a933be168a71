package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dukerupert/farthing/internal/model"
)

// CollectionStore persists named JSON collections in SQLite. Writes are
// queued onto a single background writer so callers never block on disk; a
// write that fails is logged and dropped, never rolled back into memory.
type CollectionStore struct {
	db     *sql.DB
	logger *slog.Logger
	writes chan write
	done   chan struct{}
}

type write struct {
	profileID string
	name      string // empty name means "delete every row for profileID"
	version   int
	data      []byte
	flush     chan struct{}
}

func NewCollectionStore(db *sql.DB, logger *slog.Logger) *CollectionStore {
	s := &CollectionStore{
		db:     db,
		logger: logger,
		writes: make(chan write, 128),
		done:   make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *CollectionStore) run() {
	defer close(s.done)
	for w := range s.writes {
		switch {
		case w.flush != nil:
			close(w.flush)
		case w.name == "":
			if _, err := s.db.Exec(`DELETE FROM collections WHERE profile_id = ?`, w.profileID); err != nil {
				s.logger.Error("delete profile collections", "profile_id", w.profileID, "error", err)
			}
		default:
			_, err := s.db.Exec(
				`INSERT INTO collections (profile_id, name, schema_version, data, updated_at) VALUES (?, ?, ?, ?, ?)
				 ON CONFLICT(profile_id, name) DO UPDATE SET schema_version = excluded.schema_version, data = excluded.data, updated_at = excluded.updated_at`,
				w.profileID, w.name, w.version, string(w.data), time.Now().UTC(),
			)
			if err != nil {
				s.logger.Error("persist collection", "collection", w.name, "profile_id", w.profileID, "error", err)
			}
		}
	}
}

// Save queues a collection snapshot for persistence.
func (s *CollectionStore) Save(profileID, name string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("marshal collection", "collection", name, "profile_id", profileID, "error", err)
		return
	}
	s.writes <- write{profileID: profileID, name: name, version: CurrentVersion(name), data: data}
}

// DeleteProfile queues removal of every collection row for the profile.
func (s *CollectionStore) DeleteProfile(profileID string) {
	s.writes <- write{profileID: profileID}
}

// Flush blocks until all queued writes have been applied.
func (s *CollectionStore) Flush() {
	ch := make(chan struct{})
	s.writes <- write{flush: ch}
	<-ch
}

// Close drains the write queue and stops the background writer.
func (s *CollectionStore) Close() {
	close(s.writes)
	<-s.done
}

// LoadSnapshot reads every collection, running schema migrations and
// quarantining corrupted payloads along the way. A quarantined collection
// falls back to its empty default rather than failing the load.
func (s *CollectionStore) LoadSnapshot() (*State, error) {
	st := NewState()

	rows, err := s.db.Query(`SELECT profile_id, name, schema_version, data FROM collections`)
	if err != nil {
		return nil, fmt.Errorf("load collections: %w", err)
	}
	defer rows.Close()

	type row struct {
		profileID string
		name      string
		version   int
		data      []byte
	}
	var all []row
	for rows.Next() {
		var r row
		var data string
		if err := rows.Scan(&r.profileID, &r.name, &r.version, &data); err != nil {
			return nil, fmt.Errorf("scan collection: %w", err)
		}
		r.data = []byte(data)
		all = append(all, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate collections: %w", err)
	}

	for _, r := range all {
		if strings.Contains(r.name, ".corrupt.") {
			continue
		}
		switch r.name {
		case ColProfiles:
			s.loadInto(r.profileID, r.name, r.version, r.data, &st.Profiles)
		case ColParentSettings:
			s.loadInto(r.profileID, r.name, r.version, r.data, &st.ParentSettings)
		case ColLastAutoCashOut:
			s.loadInto(r.profileID, r.name, r.version, r.data, &st.LastAutoCashOut)
		case ColChores:
			var chores []model.Chore
			if s.loadInto(r.profileID, r.name, r.version, r.data, &chores) {
				st.Chores[r.profileID] = chores
			}
		case ColPendingCashOuts:
			var recs []model.EarningsRecord
			if s.loadInto(r.profileID, r.name, r.version, r.data, &recs) {
				st.PendingCashOuts[r.profileID] = recs
			}
		case ColEarningsHistory:
			var recs []model.EarningsRecord
			if s.loadInto(r.profileID, r.name, r.version, r.data, &recs) {
				st.EarningsHistory[r.profileID] = recs
			}
		case ColPastApprovals:
			var entries []model.PastChoreApproval
			if s.loadInto(r.profileID, r.name, r.version, r.data, &entries) {
				st.PastApprovals[r.profileID] = entries
			}
		case ColBonusNotifications:
			var notes []model.BonusNotification
			if s.loadInto(r.profileID, r.name, r.version, r.data, &notes) {
				st.BonusNotifications[r.profileID] = notes
			}
		default:
			s.logger.Warn("unknown collection ignored", "collection", r.name, "profile_id", r.profileID)
		}
	}
	if st.LastAutoCashOut == nil {
		st.LastAutoCashOut = make(map[string]string)
	}
	return st, nil
}

// loadInto migrates a payload to the current schema and decodes it into v.
// On any failure the payload is quarantined and v is left untouched.
func (s *CollectionStore) loadInto(profileID, name string, version int, raw []byte, v any) bool {
	newVersion, data, err := migrate(name, version, raw)
	if err == nil {
		err = json.Unmarshal(data, v)
	}
	if err != nil {
		s.quarantine(profileID, name, raw, err)
		return false
	}
	if newVersion != version {
		_, uerr := s.db.Exec(
			`UPDATE collections SET schema_version = ?, data = ?, updated_at = ? WHERE profile_id = ? AND name = ?`,
			newVersion, string(data), time.Now().UTC(), profileID, name,
		)
		if uerr != nil {
			s.logger.Error("write back migrated collection", "collection", name, "error", uerr)
		} else {
			s.logger.Info("migrated collection", "collection", name, "profile_id", profileID, "from", version, "to", newVersion)
		}
	}
	return true
}

// quarantine copies a corrupted payload under a timestamped backup name and
// removes the original so the next load starts from the empty default.
func (s *CollectionStore) quarantine(profileID, name string, raw []byte, cause error) {
	backup := fmt.Sprintf("%s.corrupt.%d", name, time.Now().Unix())
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO collections (profile_id, name, schema_version, data, updated_at) VALUES (?, ?, 0, ?, ?)`,
		profileID, backup, string(raw), time.Now().UTC(),
	)
	if err != nil {
		s.logger.Error("back up corrupted collection", "collection", name, "error", err)
		return
	}
	if _, err := s.db.Exec(`DELETE FROM collections WHERE profile_id = ? AND name = ?`, profileID, name); err != nil {
		s.logger.Error("remove corrupted collection", "collection", name, "error", err)
	}
	s.logger.Warn("corrupted collection quarantined", "collection", name, "profile_id", profileID, "backup", backup, "error", cause)
}
