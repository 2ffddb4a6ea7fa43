package scene

import "fmt"

// ProgressAt converts a time inside the named scene to normalized progress.
// The time is clamped to [0, duration]. Unknown scenes yield ErrSceneNotFound;
// a table whose total length is zero yields progress 0.
func (t *Table) ProgressAt(name string, timeInScene float64) (float64, error) {
	if t.Len() == 0 {
		return 0, ErrEmptyTable
	}

	i, ok := t.Index(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrSceneNotFound, name)
	}

	duration := t.scenes[i].Duration
	if timeInScene < 0 {
		timeInScene = 0
	}
	if timeInScene > duration {
		timeInScene = duration
	}

	if t.total == 0 {
		return 0, nil
	}
	return (t.starts[i] + timeInScene) / t.total, nil
}

// ProgressFromSceneTime is ProgressAt with the degenerate cases (unknown scene,
// empty table) collapsed to 0.
func (t *Table) ProgressFromSceneTime(name string, timeInScene float64) float64 {
	progress, err := t.ProgressAt(name, timeInScene)
	if err != nil {
		return 0
	}
	return progress
}

// Interval returns the progress range covered by the named scene
func (t *Table) Interval(name string) (start, end float64, err error) {
	info, err := t.Lookup(name)
	if err != nil {
		return 0, 0, err
	}
	start, _ = t.ProgressAt(name, 0)
	end, _ = t.ProgressAt(name, info.Duration)
	return start, end, nil
}

// SceneAndTimeFromProgress resolves normalized progress to the current scene.
// The current scene is the first one whose cumulative end exceeds the target
// time; at or beyond the total length the last scene is selected with its time
// set to its duration. Progress is clamped to [0, 1]. The boolean is false only
// for an empty table.
func (t *Table) SceneAndTimeFromProgress(progress float64) (Position, bool) {
	if t.Len() == 0 {
		return Position{}, false
	}

	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	target := progress * t.total

	elapsed := 0.0
	for i, s := range t.scenes {
		elapsed += s.Duration
		if elapsed > target {
			return Position{
				Index: i,
				Name:  s.Name,
				Time:  target - (elapsed - s.Duration),
			}, true
		}
	}

	last := len(t.scenes) - 1
	return Position{
		Index: last,
		Name:  t.scenes[last].Name,
		Time:  t.scenes[last].Duration,
	}, true
}
