package sim

import (
	"github.com/Slepzs/oizys-keres/internal/core"
	"github.com/Slepzs/oizys-keres/internal/event"
)

// OfflineResult describes an offline catch-up.
type OfflineResult struct {
	State     core.GameState
	Events    []event.Event
	ElapsedMs int64 // raw time since the player was last active
	CappedMs  int64 // time actually replayed
	WasCapped bool
}

// ProcessOfflineProgress replays the time since state.LastActiveAt through
// ProcessTick in chunks, crediting at most Balance.Offline.MaxMs. A capped
// gap skips its oldest part: replay starts at now minus the cap and combat
// clocks are shifted forward by the skipped time.
func (e *Engine) ProcessOfflineProgress(state core.GameState, now int64) OfflineResult {
	elapsed := now - state.LastActiveAt
	if elapsed <= 0 {
		return OfflineResult{State: state}
	}

	capped := elapsed
	if limit := e.Balance.Offline.MaxMs; limit > 0 && elapsed > limit {
		capped = limit
	}
	res := OfflineResult{ElapsedMs: elapsed, CappedMs: capped, WasCapped: capped < elapsed}

	cur := state.Clone()
	start := now - capped
	if skip := start - cur.LastTickAt; skip != 0 {
		if ac := cur.ActiveCombat; ac != nil {
			ac.PlayerNextAttackAt += skip
			ac.EnemyNextAttackAt += skip
		}
		cur.LastTickAt = start
	}

	chunk := e.Balance.Offline.ChunkMs
	if chunk <= 0 {
		chunk = capped
	}
	for remaining := capped; remaining > 0; {
		step := min(chunk, remaining)
		r := e.ProcessTick(cur, step)
		cur = r.State
		res.Events = append(res.Events, r.Events...)
		remaining -= step
	}

	res.State = cur
	res.Events = append(res.Events, event.OfflineProgressApplied{
		ElapsedMs: elapsed,
		CappedMs:  capped,
		WasCapped: res.WasCapped,
	})
	return res
}
