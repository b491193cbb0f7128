package chart

// reporter delivers errors to the logger and the registered handler.
type reporter struct {
	handler  func(error)
	suppress bool
	// last is the message of the previously reported error.
	last string
	// reported is set once anything was reported since the last reset.
	reported bool
}

func (r *reporter) report(err error) {
	if err == nil {
		return
	}
	msg := err.Error()
	if r.suppress && r.reported && msg == r.last {
		return
	}
	r.last = msg
	r.reported = true
	Logger().WithError(err).Warn("chart error")
	if r.handler != nil {
		r.handler(err)
	}
}

// reset forgets the previously reported error, so it is delivered again the
// next time it occurs.
func (r *reporter) reset() {
	r.last = ""
	r.reported = false
}
