package store

import (
	"encoding/json"
	"errors"
	"fmt"
)

// projectsKey is the single slot key holding the serialized collection.
const projectsKey = "projects"

// ErrIntegrity reports that the persisted project data was present but
// unreadable. The store starts empty in that case; callers should
// surface the data loss but can keep working.
var ErrIntegrity = errors.New("stored project data is unreadable")

// Store is the single source of truth for all projects. One instance
// per process; all mutation goes through its operations, each of which
// persists synchronously before returning.
type Store struct {
	slot     Slot
	ids      *IDGenerator
	projects []Project
}

// Open loads the project collection from slot. An absent slot value is
// a normal empty start. A malformed value yields a usable empty store
// and an error wrapping ErrIntegrity.
func Open(slot Slot) (*Store, error) {
	s := &Store{slot: slot, ids: NewIDGenerator()}

	raw, ok, err := slot.ReadString(projectsKey)
	if err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}
	if !ok {
		return s, nil
	}

	var projects []Project
	if err := json.Unmarshal([]byte(raw), &projects); err != nil {
		return s, fmt.Errorf("%w: %v", ErrIntegrity, err)
	}
	s.projects = projects
	return s, nil
}

// Projects returns the current project collection in creation order.
// The returned slice is a copy; mutate projects through UpdateProject.
func (s *Store) Projects() []Project {
	out := make([]Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// Project returns the project with the given id.
func (s *Store) Project(id int64) (Project, bool) {
	for _, p := range s.projects {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}

// CreateProject allocates a new empty project named after the current
// count, appends it, and persists before returning.
func (s *Store) CreateProject() (Project, error) {
	now := Now()
	project := Project{
		ID:           s.ids.Next(),
		Name:         fmt.Sprintf("Project %d", len(s.projects)+1),
		Segments:     []Segment{},
		CreatedAt:    now,
		LastModified: now,
	}
	s.projects = append(s.projects, project)
	if err := s.persist(); err != nil {
		return Project{}, err
	}
	return project, nil
}

// UpdateProject replaces the stored project with the same id wholesale
// and persists. Updating an unknown id is a silent no-op: callers are
// expected to only update projects obtained from this store.
func (s *Store) UpdateProject(project Project) error {
	for i := range s.projects {
		if s.projects[i].ID == project.ID {
			s.projects[i] = project
			return s.persist()
		}
	}
	return nil
}

// DeleteProject removes the project with matching id and persists.
// Segment files become orphaned storage artifacts; they are not
// cleaned up here.
func (s *Store) DeleteProject(project Project) error {
	for i := range s.projects {
		if s.projects[i].ID == project.ID {
			s.projects = append(s.projects[:i], s.projects[i+1:]...)
			return s.persist()
		}
	}
	return nil
}

// NewID issues a fresh unique id from the store's generator. Segments
// share the project id space.
func (s *Store) NewID() int64 {
	return s.ids.Next()
}

// persist serializes the whole collection and writes it to the slot.
func (s *Store) persist() error {
	data, err := json.Marshal(s.projects)
	if err != nil {
		return fmt.Errorf("marshal projects: %w", err)
	}
	if err := s.slot.WriteString(projectsKey, string(data)); err != nil {
		return fmt.Errorf("persist projects: %w", err)
	}
	return nil
}
