package sched

type Options struct {
	HeapCapacity int
	RingCapacity int
	Classes      *ClassTable
}

func (o Options) withDefaults() Options {
	if o.HeapCapacity <= 0 {
		o.HeapCapacity = 64
	}
	if o.RingCapacity <= 0 {
		o.RingCapacity = 16
	}
	if o.Classes == nil {
		o.Classes = NewClassTable(0)
	}
	return o
}
