package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"
)

type comparison struct {
	Target         target
	LegacyStatus   int
	GoStatus       int
	StatusMatch    bool
	BodyMatch      bool
	Error          error
	DurationGo     time.Duration
	DurationLegacy time.Duration
}

// volatile keys differ between the two stores by construction.
var volatile = map[string]struct{}{
	"__v":       {},
	"createdAt": {},
	"updatedAt": {},
	"id":        {},
	"_id":       {},
}

func compareTarget(ctx context.Context, client *http.Client, goBase, legacyBase string, tgt target) comparison {
	comp := comparison{Target: tgt}

	goStatus, goBody, goDur, err := fetch(ctx, client, goBase, tgt)
	comp.DurationGo = goDur
	if err != nil {
		comp.Error = fmt.Errorf("go request failed: %w", err)
		return comp
	}
	legacyStatus, legacyBody, legacyDur, err := fetch(ctx, client, legacyBase, tgt)
	comp.DurationLegacy = legacyDur
	if err != nil {
		comp.Error = fmt.Errorf("legacy request failed: %w", err)
		return comp
	}

	comp.GoStatus = goStatus
	comp.LegacyStatus = legacyStatus
	comp.StatusMatch = goStatus == legacyStatus
	comp.BodyMatch = envelopesEqual(goBody, legacyBody)
	return comp
}

func fetch(ctx context.Context, client *http.Client, base string, tgt target) (int, []byte, time.Duration, error) {
	method := strings.ToUpper(strings.TrimSpace(tgt.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := tgt.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(base, "/")+path, nil)
	if err != nil {
		return 0, nil, 0, err
	}
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, 0, fmt.Errorf("read body: %w", err)
	}
	return resp.StatusCode, body, time.Since(start), nil
}

// envelopesEqual compares the list envelope (status, results, page, totalPages)
// and the data documents with storage-specific keys removed. Error bodies only
// need matching status strings.
func envelopesEqual(a, b []byte) bool {
	var left, right map[string]interface{}
	if err := json.Unmarshal(a, &left); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &right); err != nil {
		return false
	}
	if left["status"] != right["status"] {
		return false
	}
	if left["status"] != "success" {
		return true
	}
	for _, key := range []string{"results", "page", "totalPages"} {
		if left[key] != right[key] {
			return false
		}
	}
	return reflect.DeepEqual(strip(left["data"]), strip(right["data"]))
}

func strip(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, inner := range val {
			if _, skip := volatile[k]; skip {
				continue
			}
			out[k] = strip(inner)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, inner := range val {
			out[i] = strip(inner)
		}
		return out
	default:
		return val
	}
}

// printReport writes one block per target and returns the breaking and optional diff counts.
func printReport(w io.Writer, results []comparison) (breaking, optional int) {
	fmt.Fprintln(w, "Shadow Compare Report")
	fmt.Fprintln(w, "=====================")
	for _, res := range results {
		status := "OK"
		switch {
		case res.Error != nil:
			status = "ERROR"
		case !res.StatusMatch || !res.BodyMatch:
			status = "DIFF"
		}
		if status != "OK" {
			if res.Target.Critical {
				breaking++
			} else {
				optional++
			}
		}

		fmt.Fprintf(w, "[%s] %s %s\n", status, res.Target.Method, res.Target.Path)
		fmt.Fprintf(w, "  Go: %d (%s)  Legacy: %d (%s)\n", res.GoStatus, res.DurationGo, res.LegacyStatus, res.DurationLegacy)
		if res.Error != nil {
			fmt.Fprintf(w, "  Error: %v\n", res.Error)
		}
	}
	fmt.Fprintf(w, "Breaking diffs: %d, Optional diffs: %d\n", breaking, optional)
	return breaking, optional
}
