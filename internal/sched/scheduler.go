package sched

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/timzifer/fixedcap"
	"github.com/timzifer/fixedcap/internal/telemetry"
)

// ErrDuplicateTask wird zurückgegeben, wenn eine Task-ID bereits aussteht.
var ErrDuplicateTask = errors.New("sched: duplicate task id")

// ErrUnknownTask wird zurückgegeben, wenn keine ausstehende Task zur ID passt.
var ErrUnknownTask = errors.New("sched: unknown task id")

// Task beschreibt eine geplante Arbeitseinheit. Die Klasse bestimmt über die
// ClassTable den Rang, Due den frühesten Laufzeitpunkt.
type Task struct {
	ID    string
	Class string
	Due   int64
}

// ClassTable ordnet Task-Klassen einen Rang zu; kleinere Ränge laufen zuerst.
// Unbekannte Klassen erhalten den Default-Rang.
type ClassTable struct {
	ranks       map[string]int
	defaultRank int
}

// NewClassTable erzeugt eine leere Tabelle mit dem angegebenen Default-Rang.
func NewClassTable(defaultRank int) *ClassTable {
	return &ClassTable{
		ranks:       make(map[string]int),
		defaultRank: defaultRank,
	}
}

// Set hinterlegt den Rang einer Klasse.
func (t *ClassTable) Set(class string, rank int) {
	t.ranks[class] = rank
}

// Rank liefert den Rang einer Klasse.
func (t *ClassTable) Rank(class string) int {
	if rank, ok := t.ranks[class]; ok {
		return rank
	}
	return t.defaultRank
}

// compareTasks ordnet Tasks nach Klassenrang, dann Fälligkeit, dann ID.
// Der ID-Vergleich macht Comparator-Gleichheit zur Identität, sodass Update
// gezielt eine einzelne Task trifft.
func compareTasks(table *ClassTable, a, b Task) int {
	if ra, rb := table.Rank(a.Class), table.Rank(b.Class); ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	if a.Due != b.Due {
		if a.Due < b.Due {
			return -1
		}
		return 1
	}
	return strings.Compare(a.ID, b.ID)
}

// Scheduler hält ausstehende Tasks in einer Prioritätswarteschlange und
// verschiebt fällige Tasks in einen Dispatch-Ring fester Größe. Die Container
// selbst sind nicht nebenläufigkeitssicher; der Scheduler serialisiert alle
// Zugriffe über einen Mutex.
type Scheduler struct {
	mu      sync.Mutex
	classes *ClassTable
	pending *fixedcap.PriorityQueue[Task, *ClassTable]
	ready   *fixedcap.CircularQueue[Task]
	byID    map[string]Task
}

// New erzeugt einen Scheduler mit den angegebenen Optionen.
func New(opts Options) *Scheduler {
	opts = opts.withDefaults()
	return &Scheduler{
		classes: opts.Classes,
		pending: fixedcap.NewPriorityQueue(opts.HeapCapacity, opts.Classes, compareTasks),
		ready:   fixedcap.NewCircularQueue[Task](opts.RingCapacity),
		byID:    make(map[string]Task),
	}
}

// Submit stellt eine Task in die Prioritätswarteschlange ein.
func (s *Scheduler) Submit(task Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[task.ID]; exists {
		return ErrDuplicateTask
	}
	if err := s.pending.Put(task); err != nil {
		return err
	}
	s.byID[task.ID] = task
	return nil
}

// Advance verschiebt alle bis now fälligen Tasks in den Dispatch-Ring und
// liefert deren Anzahl. Läuft der Ring voll, bricht Advance mit ErrFull ab;
// bereits verschobene Tasks bleiben verschoben.
func (s *Scheduler) Advance(ctx context.Context, now int64) (moved int, err error) {
	ctx, finish := telemetry.TraceAdvance(ctx)
	defer func() { finish(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		if err = ctx.Err(); err != nil {
			return moved, err
		}
		task, ok := s.pending.Peek()
		if !ok || task.Due > now {
			return moved, nil
		}
		if err = s.ready.EnsureCapacity(); err != nil {
			return moved, err
		}
		s.ready.PutAssumeCapacity(s.pending.MustPop())
		delete(s.byID, task.ID)
		moved++
	}
}

// NextReady entnimmt die älteste fällige Task aus dem Dispatch-Ring.
func (s *Scheduler) NextReady() (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready.Pop()
}

// Reprioritize verschiebt eine ausstehende Task in eine andere Klasse und
// repariert die Heap-Ordnung an Ort und Stelle.
func (s *Scheduler) Reprioritize(id, class string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.byID[id]
	if !ok {
		return ErrUnknownTask
	}

	updated := old
	updated.Class = class
	if err := s.pending.Update(old, updated); err != nil {
		return err
	}
	s.byID[id] = updated
	return nil
}

// PendingLen liefert die Anzahl ausstehender Tasks.
func (s *Scheduler) PendingLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending.Len()
}

// ReadyLen liefert die Anzahl fälliger, noch nicht entnommener Tasks.
func (s *Scheduler) ReadyLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready.Len()
}
