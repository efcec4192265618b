package bonsai

// Sink receives draw commands. It is the only outward side effect of the
// growth engine.
type Sink interface {
	Draw(pos Point, glyph string, color Color)
}

// Command is one recorded draw call.
type Command struct {
	Pos   Point  `json:"pos"`
	Glyph string `json:"glyph"`
	Color Color  `json:"color"`
}

// Recorder is a Sink that keeps every command in order.
type Recorder struct {
	Commands []Command
}

func (r *Recorder) Draw(pos Point, glyph string, color Color) {
	r.Commands = append(r.Commands, Command{Pos: pos, Glyph: glyph, Color: color})
}

// Replay sends the recorded commands to another sink.
func (r *Recorder) Replay(s Sink) {
	for _, c := range r.Commands {
		s.Draw(c.Pos, c.Glyph, c.Color)
	}
}

// Sinks fans a command out to several sinks in order.
type Sinks []Sink

func (m Sinks) Draw(pos Point, glyph string, color Color) {
	for _, s := range m {
		if s != nil {
			s.Draw(pos, glyph, color)
		}
	}
}
