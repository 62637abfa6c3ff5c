package store

import (
	"log"

	"famboard/internal/gateway"
	"famboard/internal/mapper"
	"famboard/internal/models"
)

// drain applies change events in delivery order until the subscription
// closes. One drain goroutine runs per live subscription.
func (s *Store) drain(sub *gateway.Subscription) {
	for ev := range sub.Events() {
		s.apply(sub, ev)
	}
}

// apply reconciles one change event into the store. Events from a
// subscription that has been replaced or closed are discarded.
func (s *Store) apply(sub *gateway.Subscription, ev gateway.ChangeEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sub != sub {
		return
	}

	switch ev.Table {
	case gateway.TableProfiles:
		s.applyProfileLocked(ev)
	case gateway.TableMessages:
		s.applyMessageLocked(ev)
	case gateway.TableTasks:
		s.applyTaskLocked(ev)
	case gateway.TableLogs:
		s.applyLogLocked(ev)
	case gateway.TableButtons:
		s.applyButtonLocked(ev)
	default:
		log.Printf("Ignoring change event for unknown table %q", ev.Table)
	}
}

func (s *Store) applyProfileLocked(ev gateway.ChangeEvent) {
	switch ev.Kind {
	case gateway.ChangeInsert, gateway.ChangeUpdate:
		if ev.Profile == nil {
			return
		}
		m, err := mapper.Member(*ev.Profile)
		if err != nil {
			log.Printf("Skipping profile event: %v", err)
			return
		}
		i := s.memberIndex(m.ID)
		switch {
		case ev.Kind == gateway.ChangeInsert && i < 0:
			s.members = append(s.members, m)
		case i >= 0:
			s.members[i] = m
		}
	case gateway.ChangeDelete:
		if i := s.memberIndex(ev.OldID); i >= 0 {
			s.members = append(s.members[:i], s.members[i+1:]...)
		}
	}
}

func (s *Store) applyMessageLocked(ev gateway.ChangeEvent) {
	switch ev.Kind {
	case gateway.ChangeInsert:
		if ev.Message == nil {
			return
		}
		m := mapper.Message(*ev.Message)
		if i := s.messageIndex(m.ID); i >= 0 {
			// Confirmation of an optimistic insert; clears the pending flag
			s.messages[i] = m
			return
		}
		s.messages = append([]models.Message{m}, s.messages...)
		if m.CreatedByMemberID != s.authMemberID {
			s.unreadMessagesCount++
		}
	case gateway.ChangeUpdate:
		if ev.Message == nil {
			return
		}
		m := mapper.Message(*ev.Message)
		if i := s.messageIndex(m.ID); i >= 0 {
			s.messages[i] = m
		}
	case gateway.ChangeDelete:
		if i := s.messageIndex(ev.OldID); i >= 0 {
			s.messages = append(s.messages[:i], s.messages[i+1:]...)
		}
	}
}

func (s *Store) applyTaskLocked(ev gateway.ChangeEvent) {
	switch ev.Kind {
	case gateway.ChangeInsert:
		if ev.Task == nil {
			return
		}
		t := mapper.Task(*ev.Task)
		if s.taskIndex(t.ID) >= 0 {
			return
		}
		s.tasks = append([]models.Task{t}, s.tasks...)
	case gateway.ChangeUpdate:
		if ev.Task == nil {
			return
		}
		t := mapper.Task(*ev.Task)
		if i := s.taskIndex(t.ID); i >= 0 {
			s.tasks[i] = t
		}
	case gateway.ChangeDelete:
		if i := s.taskIndex(ev.OldID); i >= 0 {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
		}
	}
}

func (s *Store) applyLogLocked(ev gateway.ChangeEvent) {
	switch ev.Kind {
	case gateway.ChangeInsert:
		if ev.Log == nil {
			return
		}
		l, err := mapper.Log(*ev.Log)
		if err != nil {
			log.Printf("Skipping log event: %v", err)
			return
		}
		if s.logIndex(l.ID) >= 0 {
			return
		}
		s.logs = append([]models.Log{l}, s.logs...)
		if l.CreatedByMemberID != s.authMemberID {
			s.unreadTimelineCount++
		}
	case gateway.ChangeDelete:
		if i := s.logIndex(ev.OldID); i >= 0 {
			s.logs = append(s.logs[:i], s.logs[i+1:]...)
		}
	}
}

func (s *Store) applyButtonLocked(ev gateway.ChangeEvent) {
	switch ev.Kind {
	case gateway.ChangeInsert:
		if ev.Button == nil {
			return
		}
		b := mapper.Button(*ev.Button)
		if s.buttonIndex(b.ID) >= 0 {
			return
		}
		s.customButtons = append(s.customButtons, b)
	case gateway.ChangeUpdate:
		if ev.Button == nil {
			return
		}
		b := mapper.Button(*ev.Button)
		if i := s.buttonIndex(b.ID); i >= 0 {
			s.customButtons[i] = b
		}
	case gateway.ChangeDelete:
		if i := s.buttonIndex(ev.OldID); i >= 0 {
			s.customButtons = append(s.customButtons[:i], s.customButtons[i+1:]...)
		}
	}
}
