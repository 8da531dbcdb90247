// Package memory is an in-process repository.Store. Transactions work on a
// copy of the data that replaces the live copy only when fn succeeds.
package memory

import (
	"context"
	"sync"
	"time"

	"job-connect/internal/domain/account"
	"job-connect/internal/domain/application"
	"job-connect/internal/domain/job"
	"job-connect/internal/domain/message"
	"job-connect/internal/domain/profile"
	"job-connect/internal/domain/skill"
	"job-connect/internal/repository"

	"github.com/google/uuid"
)

type data struct {
	accounts          map[uuid.UUID]account.Account
	skills            map[uuid.UUID]skill.Skill
	applicants        map[uuid.UUID]profile.ApplicantProfile
	applicantSkills   map[uuid.UUID][]uuid.UUID
	experiences       map[uuid.UUID]profile.Experience
	educations        map[uuid.UUID]profile.Education
	recruiters        map[uuid.UUID]profile.RecruiterProfile
	jobs              map[uuid.UUID]job.Job
	jobSkills         map[uuid.UUID][]uuid.UUID
	applications      map[uuid.UUID]application.Application
	applicationSkills map[uuid.UUID][]uuid.UUID
	messages          map[uuid.UUID]message.Message
}

func newData() *data {
	return &data{
		accounts:          map[uuid.UUID]account.Account{},
		skills:            map[uuid.UUID]skill.Skill{},
		applicants:        map[uuid.UUID]profile.ApplicantProfile{},
		applicantSkills:   map[uuid.UUID][]uuid.UUID{},
		experiences:       map[uuid.UUID]profile.Experience{},
		educations:        map[uuid.UUID]profile.Education{},
		recruiters:        map[uuid.UUID]profile.RecruiterProfile{},
		jobs:              map[uuid.UUID]job.Job{},
		jobSkills:         map[uuid.UUID][]uuid.UUID{},
		applications:      map[uuid.UUID]application.Application{},
		applicationSkills: map[uuid.UUID][]uuid.UUID{},
		messages:          map[uuid.UUID]message.Message{},
	}
}

func cloneMap[V any](m map[uuid.UUID]V) map[uuid.UUID]V {
	out := make(map[uuid.UUID]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneLinks(m map[uuid.UUID][]uuid.UUID) map[uuid.UUID][]uuid.UUID {
	out := make(map[uuid.UUID][]uuid.UUID, len(m))
	for k, v := range m {
		out[k] = append([]uuid.UUID(nil), v...)
	}
	return out
}

func (d *data) clone() *data {
	return &data{
		accounts:          cloneMap(d.accounts),
		skills:            cloneMap(d.skills),
		applicants:        cloneMap(d.applicants),
		applicantSkills:   cloneLinks(d.applicantSkills),
		experiences:       cloneMap(d.experiences),
		educations:        cloneMap(d.educations),
		recruiters:        cloneMap(d.recruiters),
		jobs:              cloneMap(d.jobs),
		jobSkills:         cloneLinks(d.jobSkills),
		applications:      cloneMap(d.applications),
		applicationSkills: cloneLinks(d.applicationSkills),
		messages:          cloneMap(d.messages),
	}
}

// clock hands out strictly increasing timestamps so ordering by time is total.
type clock struct {
	mu   sync.Mutex
	now  func() time.Time
	last time.Time
}

func (c *clock) tick() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now().UTC()
	if !t.After(c.last) {
		t = c.last.Add(time.Microsecond)
	}
	c.last = t
	return t
}

type Store struct {
	mu    *sync.Mutex
	data  *data
	clock *clock
	inTx  bool
}

var _ repository.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		mu:    &sync.Mutex{},
		data:  newData(),
		clock: &clock{now: time.Now},
	}
}

// lock guards a single repository call. Inside WithTx the outer lock is
// already held for the whole transaction.
func (s *Store) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) Accounts() repository.AccountRepository { return accountRepo{s} }

func (s *Store) Skills() repository.SkillRepository { return skillRepo{s} }

func (s *Store) ApplicantProfiles() repository.ApplicantProfileRepository {
	return applicantRepo{s}
}

func (s *Store) RecruiterProfiles() repository.RecruiterProfileRepository {
	return recruiterRepo{s}
}

func (s *Store) Jobs() repository.JobRepository { return jobRepo{s} }

func (s *Store) Applications() repository.ApplicationRepository { return applicationRepo{s} }

func (s *Store) Messages() repository.MessageRepository { return messageRepo{s} }

// WithTx serializes transactions. Calls made on the outer Store from inside
// fn would block; fn must use tx.
func (s *Store) WithTx(ctx context.Context, fn func(tx repository.Store) error) error {
	if s.inTx {
		return fn(s)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &Store{mu: s.mu, data: s.data.clone(), clock: s.clock, inTx: true}
	if err := fn(tx); err != nil {
		return err
	}
	*s.data = *tx.data
	return nil
}

func (s *Store) skillsFor(ids []uuid.UUID) []skill.Skill {
	out := make([]skill.Skill, 0, len(ids))
	for _, id := range ids {
		if sk, ok := s.data.skills[id]; ok {
			out = append(out, sk)
		}
	}
	skill.SortByName(out)
	return out
}

func (s *Store) checkSkills(ids []uuid.UUID) error {
	for _, id := range ids {
		if _, ok := s.data.skills[id]; !ok {
			return repository.ErrReference
		}
	}
	return nil
}
