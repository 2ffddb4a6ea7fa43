package sim

import (
	"github.com/penwyp/go-sticky-scroll/internal/util"
)

// SceneSpec declares a scene of a simulated document
type SceneSpec struct {
	Name     string   `yaml:"name" json:"name"`
	Duration float64  `yaml:"duration" json:"duration"`
	Layouts  []string `yaml:"layouts,omitempty" json:"layouts,omitempty"`
}

// Document is a simulated scene document. Each scene has a single timeline
// whose position and play state are tracked; every mutation is recorded.
type Document struct {
	scenes    []SceneSpec
	current   string
	positions map[string]float64
	playing   map[string]bool
	trace     *Trace
	window    *Window

	// OnSceneLoad is called after a scene becomes current. Returning true
	// marks the load as suppressed.
	OnSceneLoad func(name string) bool
}

// NewDocument creates a document showing current, or the first scene when
// current is empty
func NewDocument(scenes []SceneSpec, current string, trace *Trace) *Document {
	if current == "" && len(scenes) > 0 {
		current = scenes[0].Name
	}
	d := &Document{
		scenes:    append([]SceneSpec(nil), scenes...),
		current:   current,
		positions: make(map[string]float64),
		playing:   make(map[string]bool),
		trace:     trace,
	}
	for _, s := range scenes {
		d.playing[s.Name] = true
	}
	return d
}

// AttachWindow lets recorded events carry the scroll position
func (d *Document) AttachWindow(w *Window) {
	d.window = w
}

// SceneNames lists scenes in document order
func (d *Document) SceneNames() []string {
	names := make([]string, len(d.scenes))
	for i, s := range d.scenes {
		names[i] = s.Name
	}
	return names
}

// CurrentSceneName returns the scene currently shown
func (d *Document) CurrentSceneName() string {
	return d.current
}

// ShowScene makes name current. Unknown names are ignored.
func (d *Document) ShowScene(name string) {
	if _, ok := d.find(name); !ok {
		util.LogWarnf("Document has no scene %q", name)
		return
	}
	d.current = name

	detail := ""
	if d.OnSceneLoad != nil && d.OnSceneLoad(name) {
		detail = "load suppressed"
	}
	d.record(Event{Kind: KindShow, Scene: name, Detail: detail})
}

// TimelineDuration returns the scene's timeline length. Like the host
// documents it models, the length is only available for the current scene.
func (d *Document) TimelineDuration(name string) float64 {
	if name != d.current {
		util.LogWarnf("Timeline duration of %q requested while %q is current", name, d.current)
		return 0
	}
	s, _ := d.find(name)
	return s.Duration
}

// SceneLayouts returns the layout names of the scene
func (d *Document) SceneLayouts(name string) any {
	s, _ := d.find(name)
	return s.Layouts
}

// PauseTimeline pauses the scene's timeline
func (d *Document) PauseTimeline(name string) {
	d.playing[name] = false
	d.record(Event{Kind: KindPause, Scene: name, Time: d.positions[name]})
}

// SeekTimeline moves the scene's timeline to t, clamped to its duration
func (d *Document) SeekTimeline(t float64, name string) {
	s, ok := d.find(name)
	if !ok {
		return
	}
	if t < 0 {
		t = 0
	}
	if t > s.Duration {
		t = s.Duration
	}
	d.positions[name] = t
	d.record(Event{Kind: KindSeek, Scene: name, Time: t})
}

// TriggerBehavior records a custom behavior
func (d *Document) TriggerBehavior(name string) {
	d.record(Event{Kind: KindBehavior, Scene: d.current, Time: d.positions[d.current], Detail: name})
}

// TimelinePosition returns the timeline position of the scene
func (d *Document) TimelinePosition(name string) float64 {
	return d.positions[name]
}

// Playing reports whether the scene's timeline is playing
func (d *Document) Playing(name string) bool {
	return d.playing[name]
}

func (d *Document) find(name string) (SceneSpec, bool) {
	for _, s := range d.scenes {
		if s.Name == name {
			return s, true
		}
	}
	return SceneSpec{}, false
}

func (d *Document) record(e Event) {
	if d.window != nil {
		e.ScrollY = d.window.ScrollY()
	}
	d.trace.Record(e)
}
