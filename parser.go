package sixelcore

// sixelState is the SixelParser's internal state. Ground is the initial
// and default state.
type sixelState int

const (
	stateGround sixelState = iota
	stateRepeat
	stateColorIntro
	stateColorParam
	stateRaster
)

// SixelParser is a streaming state machine that turns a sequence of code
// points encoding SIXEL commands into calls on an Events sink. It is
// deliberately tolerant: unknown or out-of-state code points are silently
// dropped, and the parser never fails.
//
// SixelParser is single-threaded and synchronous — each call to Feed
// completes its effect (including any Events callback) before returning.
type SixelParser struct {
	state     sixelState
	params    []int
	events    Events
	finalizer func()
}

// ParserOption configures a SixelParser at construction time.
type ParserOption func(*SixelParser)

// WithFinalizer supplies a callback invoked on every Finalize call, after
// any pending leave action has fired.
func WithFinalizer(fn func()) ParserOption {
	return func(p *SixelParser) {
		p.finalizer = fn
	}
}

// NewSixelParser creates a parser in the Ground state, driving events.
func NewSixelParser(events Events, opts ...ParserOption) *SixelParser {
	p := &SixelParser{
		state:  stateGround,
		events: events,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse feeds every code point of data through the parser, in order.
func (p *SixelParser) Parse(data []byte) {
	for _, r := range string(data) {
		p.Feed(rune(r))
	}
}

// Feed processes a single input code point, possibly invoking one or more
// Events callbacks.
func (p *SixelParser) Feed(r rune) {
	switch p.state {
	case stateGround:
		p.feedGround(r)
	case stateRepeat:
		p.feedRepeat(r)
	case stateColorIntro:
		p.feedColorIntro(r)
	case stateColorParam:
		p.feedParamState(r, true)
	case stateRaster:
		p.feedParamState(r, false)
	}
}

// Finalize transitions the parser to Ground, firing any pending leave
// action, and invokes the finalizer callback if one was supplied. Safe to
// call more than once (subsequent calls are no-ops beyond re-invoking the
// finalizer).
func (p *SixelParser) Finalize() {
	switch p.state {
	case stateColorParam:
		p.leaveColorParam()
	case stateRaster:
		p.leaveRaster()
	}
	p.state = stateGround
	p.params = nil
	if p.finalizer != nil {
		p.finalizer()
	}
}

func (p *SixelParser) feedGround(r rune) {
	switch {
	case r == '#':
		p.enterColorIntro()
	case r == '!':
		p.enterRepeat()
	case r == '"':
		p.enterRaster()
	case r == '$':
		p.events.Rewind()
	case r == '-':
		p.events.Newline()
	case isSixel(r):
		p.events.Render(sixelValue(r))
	default:
		// digits and anything else are silently ignored in Ground.
	}
}

func (p *SixelParser) feedRepeat(r rune) {
	switch {
	case isDigit(r):
		p.accumulate(digitValue(r))
	case isSixel(r):
		count := p.params[0]
		v := sixelValue(r)
		for i := 0; i < count; i++ {
			p.events.Render(v)
		}
		p.state = stateGround
		p.params = nil
	case r == '#':
		p.enterColorIntro()
	case r == '!':
		p.enterRepeat()
	case r == '"':
		p.enterRaster()
	case r == '$':
		p.state = stateGround
		p.params = nil
		p.events.Rewind()
	case r == '-':
		p.state = stateGround
		p.params = nil
		p.events.Newline()
	default:
		// ignored, stays in RepeatIntroducer
	}
}

func (p *SixelParser) feedColorIntro(r rune) {
	switch {
	case isDigit(r):
		p.accumulate(digitValue(r))
		p.state = stateColorParam
	case r == '#':
		p.enterColorIntro()
	case r == '!':
		p.enterRepeat()
	case r == '"':
		p.enterRaster()
	case r == '$':
		p.state = stateGround
		p.params = nil
		p.events.Rewind()
	case r == '-':
		p.state = stateGround
		p.params = nil
		p.events.Newline()
	default:
		// ignored, stays in ColorIntroducer
	}
}

// feedParamState handles both ColorParam (isColor true) and RasterSettings
// (isColor false), which share identical digit/semicolon/leave structure.
func (p *SixelParser) feedParamState(r rune, isColor bool) {
	switch {
	case isDigit(r):
		p.accumulate(digitValue(r))
	case r == ';':
		p.params = append(p.params, 0)
	default:
		if isColor {
			p.leaveColorParam()
		} else {
			p.leaveRaster()
		}
		p.state = stateGround
		p.Feed(r)
	}
}

func (p *SixelParser) enterColorIntro() {
	p.state = stateColorIntro
	p.params = []int{0}
}

func (p *SixelParser) enterRepeat() {
	p.state = stateRepeat
	p.params = []int{0}
}

func (p *SixelParser) enterRaster() {
	p.state = stateRaster
	p.params = []int{0}
}

func (p *SixelParser) accumulate(d int) {
	n := len(p.params)
	p.params[n-1] = p.params[n-1]*10 + d
}

// leaveColorParam fires the appropriate Events callback for the number of
// parameters accumulated, per spec: one parameter selects a color, five
// parameters with space==2 define an RGB color; any other count (and any
// non-RGB color space) emits nothing.
func (p *SixelParser) leaveColorParam() {
	switch len(p.params) {
	case 1:
		p.events.UseColor(p.params[0])
	case 5:
		index, space, a, b, c := p.params[0], p.params[1], p.params[2], p.params[3], p.params[4]
		if space == 2 {
			p.events.SetColor(index, RGBColor{R: scale100to255(a), G: scale100to255(b), B: scale100to255(c)})
		}
		// space != 2 is HSL; not implemented, so no event is emitted.
	}
	p.params = nil
}

// leaveRaster fires SetRaster only when exactly four parameters were
// accumulated; otherwise the raster settings command is dropped silently.
func (p *SixelParser) leaveRaster() {
	if len(p.params) == 4 {
		p.events.SetRaster(p.params[0], p.params[1], Size{W: p.params[2], H: p.params[3]})
	}
	p.params = nil
}

func scale100to255(v int) uint8 {
	return uint8((v * 255 / 100) % 256)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func digitValue(r rune) int {
	return int(r - '0')
}

// isSixel reports whether r is a sixel data character ('?' through '~',
// code points 63-126).
func isSixel(r rune) bool {
	return r >= 63 && r <= 126
}

// sixelValue converts a sixel data character to its 6-bit mask.
func sixelValue(r rune) byte {
	return byte(r - 63)
}
