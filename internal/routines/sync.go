package routines

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/entrenoapp/datasync/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

const (
	listKey       = "rutinas"
	activeIDKey   = "active_routine"
	activeNameKey = "active_routine_name"
	lastSyncKey   = "last_sync_ts"

	serverIDPrefix    = "srv_"
	routineKeyPrefix  = "routine_"
	sessionKeyPrefix  = "last_session_"
	serverRoutineKeys = routineKeyPrefix + serverIDPrefix
)

// Report summarizes one routine list sync. Removed only counts purged
// server routines; locally created routines are never touched.
type Report struct {
	Added     int      `json:"added"`
	Updated   int      `json:"updated"`
	Removed   int      `json:"removed"`
	Total     int      `json:"total"`
	ServerIDs []string `json:"serverIds"`
}

type routinesAPI interface {
	FetchRoutinesRaw(ctx context.Context, token string) ([]json.RawMessage, error)
}

// KV is the slot storage the syncer is given, declared at the consumer.
// Get returns (nil, nil) for a key that was never set.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Keys(ctx context.Context, prefix string) ([]string, error)
	Remove(ctx context.Context, keys ...string) error
}

// Syncer mirrors the user's server-side routines into local storage.
// Server routines live under ids prefixed with "srv_"; everything else in
// the local list is user data and is preserved as-is.
type Syncer struct {
	kv  KV
	api routinesAPI
}

func NewSyncer(kv KV, api routinesAPI) *Syncer {
	return &Syncer{
		kv:  kv,
		api: api,
	}
}

// listItem is one row of the local routine list slot.
type listItem struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
	Dias   int    `json:"dias"`
	Fecha  string `json:"fecha"`
	Server bool   `json:"server,omitempty"`
}

var dayFieldPattern = regexp.MustCompile(`^dia(\d+)$`)

// SyncFromServer replaces the server-owned part of the local routine list
// with what the backend currently has, purging payloads of server
// routines that no longer exist. When the server cannot be reached the
// local state is left untouched and an empty report is returned.
func (s *Syncer) SyncFromServer(ctx context.Context, token string) (_ Report, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "routines.syncFromServer")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	localList, err := s.readLocalList(ctx)
	if err != nil {
		return Report{}, err
	}

	var localFree []listItem
	for _, item := range localList {
		if !strings.HasPrefix(item.ID, serverIDPrefix) {
			localFree = append(localFree, item)
		}
	}

	rawRoutines, err := s.api.FetchRoutinesRaw(ctx, token)
	if err != nil {
		// server down is not fatal, the local list stays as it was
		log.Warnf("routine sync: fetch failed, keeping local list untouched: %s", err)
		return Report{}, nil
	}

	routines := parseRoutines(rawRoutines)

	serverList := make([]listItem, 0, len(routines))
	serverSet := make(map[string]struct{}, len(routines))
	serverIDs := make([]string, 0, len(routines))
	for _, routine := range routines {
		serverList = append(serverList, routine.asListItem())
		serverSet[routine.localID()] = struct{}{}
		serverIDs = append(serverIDs, routine.localID())
	}

	report := Report{Total: len(serverIDs), ServerIDs: serverIDs}

	// store each server routine's day payload, counting added vs updated
	for _, routine := range routines {
		payloadBytes, err := json.Marshal(routine.payload())
		if err != nil {
			return Report{}, fmt.Errorf("marshal routine payload %s: %w", routine.localID(), err)
		}

		key := routineKeyPrefix + routine.localID()
		oldValue, err := s.kv.Get(ctx, key)
		if err != nil {
			return Report{}, fmt.Errorf("read routine slot %s: %w", key, err)
		}
		if oldValue == nil {
			report.Added++
		} else if string(oldValue) != string(payloadBytes) {
			report.Updated++
		}

		if err := s.kv.Set(ctx, key, payloadBytes); err != nil {
			return Report{}, fmt.Errorf("write routine slot %s: %w", key, err)
		}
	}

	// purge server routines no longer present on the server
	storedKeys, err := s.kv.Keys(ctx, serverRoutineKeys)
	if err != nil {
		return Report{}, fmt.Errorf("list routine slots: %w", err)
	}
	var staleIDs []string
	for _, key := range storedKeys {
		id := strings.TrimPrefix(key, routineKeyPrefix)
		if _, ok := serverSet[id]; !ok {
			staleIDs = append(staleIDs, id)
		}
	}
	for _, id := range staleIDs {
		if err := s.kv.Remove(ctx, routineKeyPrefix+id, sessionKeyPrefix+id); err != nil {
			return Report{}, fmt.Errorf("purge routine %s: %w", id, err)
		}
	}
	report.Removed = len(staleIDs)

	// final list: preserved local routines first, then the server ones
	finalList := append(localFree, serverList...)
	finalListBytes, err := json.Marshal(finalList)
	if err != nil {
		return Report{}, fmt.Errorf("marshal routine list: %w", err)
	}
	if err := s.kv.Set(ctx, listKey, finalListBytes); err != nil {
		return Report{}, fmt.Errorf("write routine list: %w", err)
	}

	// clear the active routine if it was a purged server routine
	activeID, err := s.kv.Get(ctx, activeIDKey)
	if err != nil {
		return Report{}, fmt.Errorf("read active routine: %w", err)
	}
	if id := string(activeID); strings.HasPrefix(id, serverIDPrefix) {
		if _, ok := serverSet[id]; !ok {
			if err := s.kv.Remove(ctx, activeIDKey, activeNameKey); err != nil {
				return Report{}, fmt.Errorf("clear active routine: %w", err)
			}
		}
	}

	if err := s.kv.Set(ctx, lastSyncKey, []byte(time.Now().UTC().Format(time.RFC3339))); err != nil {
		return Report{}, fmt.Errorf("write sync timestamp: %w", err)
	}

	log.Infof(
		"routine sync done: %d added, %d updated, %d removed, %d total",
		report.Added, report.Updated, report.Removed, report.Total,
	)
	return report, nil
}

func (s *Syncer) readLocalList(ctx context.Context) ([]listItem, error) {
	raw, err := s.kv.Get(ctx, listKey)
	if err != nil {
		return nil, fmt.Errorf("read routine list: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var list []listItem
	if err := json.Unmarshal(raw, &list); err != nil {
		// a corrupt list slot is treated as empty, same as the app does
		log.Warnf("routine sync: corrupt local routine list, starting fresh: %s", err)
		return nil, nil
	}

	valid := list[:0]
	for _, item := range list {
		if item.ID != "" {
			valid = append(valid, item)
		}
	}
	return valid, nil
}

// serverRoutine is one routine document from the backend. Routine
// documents come in several historical shapes, so fields are pulled out of
// a generic map.
type serverRoutine struct {
	remoteID string
	fields   map[string]any
}

func parseRoutines(rawRoutines []json.RawMessage) []serverRoutine {
	var routines []serverRoutine
	for _, raw := range rawRoutines {
		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil {
			log.Tracef("routine sync: skipping malformed routine document: %s", err)
			continue
		}

		remoteID := firstNonEmptyString(fields, "_id", "id", "uuid")
		if remoteID == "" {
			continue
		}

		routines = append(routines, serverRoutine{remoteID: remoteID, fields: fields})
	}
	return routines
}

func (r serverRoutine) localID() string {
	return serverIDPrefix + r.remoteID
}

func (r serverRoutine) asListItem() listItem {
	name := firstNonEmptyString(r.fields, "nombre", "name")
	if name == "" {
		name = "Rutina"
	}

	days := r.days()
	dayCount := intField(r.fields, "dias")
	if dayCount == 0 {
		dayCount = len(days)
	}
	if dayCount == 0 {
		dayCount = 1
	}

	return listItem{
		ID:     r.localID(),
		Nombre: name,
		Dias:   dayCount,
		Fecha:  r.updatedAtDate(),
		Server: true,
	}
}

// payload is what gets stored under the routine's slot: the day array if
// there is one, otherwise an explicit payload field, otherwise the whole
// document.
func (r serverRoutine) payload() any {
	if days := r.days(); len(days) > 0 {
		return days
	}
	if payload, ok := r.fields["payload"]; ok {
		return payload
	}
	return r.fields
}

// days extracts the day array, accepting both the diasArr form and the
// flattened {dia1, dia2, ...} form.
func (r serverRoutine) days() []any {
	if days, ok := r.fields["diasArr"].([]any); ok {
		return days
	}

	type numberedDay struct {
		number int
		value  any
	}
	var numbered []numberedDay
	for key, value := range r.fields {
		match := dayFieldPattern.FindStringSubmatch(key)
		if match == nil {
			continue
		}
		n, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		numbered = append(numbered, numberedDay{number: n, value: value})
	}
	if len(numbered) == 0 {
		return nil
	}

	sort.Slice(numbered, func(i, j int) bool { return numbered[i].number < numbered[j].number })
	days := make([]any, 0, len(numbered))
	for _, day := range numbered {
		days = append(days, day.value)
	}
	return days
}

func (r serverRoutine) updatedAtDate() string {
	for _, field := range []string{"updatedAt", "createdAt"} {
		if value, ok := r.fields[field].(string); ok && value != "" {
			if parsed, err := time.Parse(time.RFC3339, value); err == nil {
				return parsed.Format("02/01/2006")
			}
		}
	}
	return time.Now().Format("02/01/2006")
}

func firstNonEmptyString(fields map[string]any, keys ...string) string {
	for _, key := range keys {
		if value, ok := fields[key].(string); ok && value != "" {
			return value
		}
	}
	return ""
}

func intField(fields map[string]any, key string) int {
	if value, ok := fields[key].(float64); ok {
		return int(value)
	}
	return 0
}
