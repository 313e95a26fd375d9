package sheet

// Diagnostics maps a column (or sheet-level category) to the messages
// reported for it. Keys and messages keep insertion order.
type Diagnostics struct {
	keys []string
	msgs map[string][]string
}

// Add appends msg under key.
func (d *Diagnostics) Add(key, msg string) {
	if d.msgs == nil {
		d.msgs = make(map[string][]string)
	}
	if _, ok := d.msgs[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.msgs[key] = append(d.msgs[key], msg)
}

// AddOnce appends msg under key unless the identical message is already
// there. It reports whether the message was added.
func (d *Diagnostics) AddOnce(key, msg string) bool {
	for _, m := range d.msgs[key] {
		if m == msg {
			return false
		}
	}
	d.Add(key, msg)
	return true
}

// Get returns the messages for key.
func (d *Diagnostics) Get(key string) []string {
	return d.msgs[key]
}

// Has reports whether key has at least one message.
func (d *Diagnostics) Has(key string) bool {
	return len(d.msgs[key]) > 0
}

// Keys returns the keys with messages, in insertion order.
func (d *Diagnostics) Keys() []string {
	return append([]string(nil), d.keys...)
}

// Count returns the total number of messages.
func (d *Diagnostics) Count() int {
	n := 0
	for _, m := range d.msgs {
		n += len(m)
	}
	return n
}

// Map returns a copy of the diagnostics as a plain map.
func (d *Diagnostics) Map() map[string][]string {
	out := make(map[string][]string, len(d.msgs))
	for k, m := range d.msgs {
		out[k] = append([]string(nil), m...)
	}
	return out
}
