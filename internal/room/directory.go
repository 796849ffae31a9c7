package room

import "sort"

// Config holds directory settings.
type Config struct {
	// KeepEmpty retains rooms with no members instead of removing them.
	KeepEmpty bool
}

// Summary describes one room for listings.
type Summary struct {
	ID    string `json:"id"`
	Users int    `json:"users"`
}

type presence struct {
	names []string
	index map[string]int
}

func newPresence() *presence {
	return &presence{index: make(map[string]int)}
}

func (p *presence) add(name string) {
	if _, ok := p.index[name]; ok {
		return
	}
	p.index[name] = len(p.names)
	p.names = append(p.names, name)
}

func (p *presence) remove(name string) {
	i, ok := p.index[name]
	if !ok {
		return
	}
	p.names = append(p.names[:i], p.names[i+1:]...)
	delete(p.index, name)
	for j := i; j < len(p.names); j++ {
		p.index[p.names[j]] = j
	}
}

func (p *presence) snapshot() []string {
	out := make([]string, len(p.names))
	copy(out, p.names)
	return out
}

// Directory maps room ids to presence sets.
type Directory struct {
	cfg   Config
	rooms map[string]*presence
}

// NewDirectory creates an empty directory.
func NewDirectory(cfg Config) *Directory {
	return &Directory{
		cfg:   cfg,
		rooms: make(map[string]*presence),
	}
}

// Join adds user to room, creating the room if needed, and returns the
// resulting presence list. Joining twice under the same name is a no-op.
func (d *Directory) Join(room, user string) []string {
	p, ok := d.rooms[room]
	if !ok {
		p = newPresence()
		d.rooms[room] = p
	}
	p.add(user)
	return p.snapshot()
}

// Leave removes user from room and returns the resulting presence list.
// Unknown rooms and users are a no-op and yield an empty list.
func (d *Directory) Leave(room, user string) []string {
	p, ok := d.rooms[room]
	if !ok {
		return []string{}
	}
	p.remove(user)
	if len(p.names) == 0 && !d.cfg.KeepEmpty {
		delete(d.rooms, room)
	}
	return p.snapshot()
}

// Members returns the presence list of room, or an empty list.
func (d *Directory) Members(room string) []string {
	p, ok := d.rooms[room]
	if !ok {
		return []string{}
	}
	return p.snapshot()
}

// Exists reports whether room is present in the directory.
func (d *Directory) Exists(room string) bool {
	_, ok := d.rooms[room]
	return ok
}

// Rooms returns a summary of every room, sorted by id.
func (d *Directory) Rooms() []Summary {
	out := make([]Summary, 0, len(d.rooms))
	for id, p := range d.rooms {
		out = append(out, Summary{ID: id, Users: len(p.names)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of rooms.
func (d *Directory) Len() int {
	return len(d.rooms)
}
