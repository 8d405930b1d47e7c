// Package scheduler implements the Response Scheduler (spec §4.6): the
// response-delay jitter formula, the fixed-capacity outgoing packet queue,
// and the Transport collaborator interface the cooperative handle_periodic
// loop drives (spec §5, §6; SPEC_FULL.md §4.8 "Transport collaborator,
// concretely").
package scheduler

import (
	"github.com/soypat/pndcp"
)

// Transport is the concrete realization of the three collaborator
// interfaces of spec §6: non-blocking receive, non-blocking send, and the
// IP-update notification, plus the monotonic tick source. Core packages
// depend only on this interface; [github.com/soypat/pndcp/examples/linuxraw]
// is one implementation over a Linux AF_PACKET socket.
type Transport interface {
	// RecvNext returns the next received frame's bytes, or
	// [pndcp.ErrRxWouldBlock] if none is pending.
	RecvNext() ([]byte, error)
	// Send submits a frame of length n, calling fill to populate the first
	// n bytes of the buffer it provides. Returns [pndcp.ErrTxWouldBlock] if
	// the transport cannot accept it right now.
	Send(n int, fill func([]byte)) error
	// UpdateInterface is called after a successful Set of IP parameters.
	UpdateInterface(ip, mask, gateway [4]byte) error
	// Now returns the current monotonic tick, in the same units as the
	// computed response delays.
	Now() uint64
}

// OutgoingPacket is a queued response awaiting its send-at deadline (spec
// §3 "OutgoingPacket"). Buf is a fixed-size array, never a slice into a
// shared buffer, so queued packets outlive the receive buffer they were
// built from.
type OutgoingPacket struct {
	Buf    [pndcp.MaxFrameSize]byte
	Len    int
	SendAt uint64
	used   bool
}

// Queue is the fixed-capacity-8 outgoing array of spec §4.6. Enqueue/Drain
// never allocate; a full queue silently drops new responses
// ([pndcp.ErrQueueFull]), matching spec §7's "QueueFull causes the response
// to be silently dropped" propagation policy.
type Queue struct {
	slots [pndcp.OutgoingQueueDepth]OutgoingPacket
}

// Delay computes the response delay for a given ResponseDelayFactor,
// implementing the law of spec §4.6 and the quantified property of spec §8
// ("Response delay law"): RDF ≤ 1 gives a fixed 400 time units; otherwise
// the delay is `1 + RDF*10` rounded up to the next multiple of 1000.
func Delay(rdf uint16) uint64 {
	if rdf <= 1 {
		return 400
	}
	raw := uint64(1) + uint64(rdf)*10
	return roundUpTo1000(raw)
}

func roundUpTo1000(v uint64) uint64 {
	rem := v % 1000
	if rem == 0 {
		return v
	}
	return v - rem + 1000
}

// Enqueue copies buf into the first free slot with the given send-at
// deadline. Returns [pndcp.ErrQueueFull] if every slot is occupied; the
// caller's response is then dropped, matching the controller's own
// Identify-retry expectation (spec §7).
func (q *Queue) Enqueue(buf []byte, sendAt uint64) error {
	for i := range q.slots {
		if !q.slots[i].used {
			slot := &q.slots[i]
			slot.Len = copy(slot.Buf[:], buf)
			slot.SendAt = sendAt
			slot.used = true
			return nil
		}
	}
	return pndcp.ErrQueueFull
}

// Drain scans slots in index order and transmits every entry whose send-at
// has passed, via t.Send, clearing the slot afterward. Ties at the same
// send-at are resolved by ascending slot index (spec §5 "Ordering
// guarantees"). Drain stops at the first Send error and returns it; that
// slot and any later due slots stay queued for the next call.
func (q *Queue) Drain(t Transport, now uint64) error {
	for i := range q.slots {
		slot := &q.slots[i]
		if !slot.used || slot.SendAt > now {
			continue
		}
		n := slot.Len
		err := t.Send(n, func(dst []byte) {
			copy(dst, slot.Buf[:n])
		})
		if err != nil {
			return err
		}
		slot.used = false
		slot.Len = 0
	}
	return nil
}

// Pending reports how many slots currently hold an undrained packet.
func (q *Queue) Pending() int {
	n := 0
	for i := range q.slots {
		if q.slots[i].used {
			n++
		}
	}
	return n
}
