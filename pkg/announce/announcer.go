package announce

import (
	log "github.com/sirupsen/logrus"
)

// Announcer owns one engine session per announced interface and keeps
// the registered records alive until Shutdown. Sessions are held in the
// order they were opened so shutdown can walk them in reverse.
type Announcer struct {
	engine   Engine
	sessions []*session
}

type session struct {
	iface   string
	handle  Session
	records []Record
}

func NewAnnouncer(engine Engine) *Announcer {
	return &Announcer{engine: engine}
}

// Announce opens one session per group and registers the group's
// records on it. A session that fails to open drops only that group,
// a record that fails to register drops only that record. It returns
// the number of records that were published.
func (a *Announcer) Announce(groups []Group) int {
	published := 0
	for _, group := range groups {
		handle, err := a.engine.Open(group.Iface, group.IPs)
		if err != nil {
			log.WithError(err).WithField("iface", group.Iface).Warnln("Couldn't open mDNS session, skipping interface")
			continue
		}
		sessionsOpen.Inc()

		sess := &session{iface: group.Iface, handle: handle}
		for _, record := range group.Records {
			if err := handle.Register(record); err != nil {
				log.WithError(err).WithField("host", record.Host).Warnln("Couldn't register record")
				continue
			}
			log.WithField("iface", group.Iface).WithField("host", record.Host).Infoln("Registered record")
			recordsRegistered.Inc()
			sess.records = append(sess.records, record)
		}

		a.sessions = append(a.sessions, sess)
		published += len(sess.records)
	}
	return published
}

// Shutdown withdraws every registered record and then closes all
// sessions, both in the reverse order the sessions were opened. Errors
// are logged and never cut the procedure short, so every session gets
// its chance to clean up. Calling Shutdown again is a no-op.
func (a *Announcer) Shutdown() {
	for i := len(a.sessions) - 1; i >= 0; i-- {
		sess := a.sessions[i]
		for _, record := range sess.records {
			if err := sess.handle.Withdraw(record); err != nil {
				log.WithError(err).WithField("host", record.Host).Warnln("Couldn't withdraw record")
				continue
			}
			log.WithField("iface", sess.iface).WithField("host", record.Host).Infoln("Withdrew record")
			recordsWithdrawn.Inc()
		}
	}

	for i := len(a.sessions) - 1; i >= 0; i-- {
		sess := a.sessions[i]
		if err := sess.handle.Close(); err != nil {
			log.WithError(err).WithField("iface", sess.iface).Warnln("Couldn't close mDNS session")
		}
		sessionsOpen.Dec()
	}

	a.sessions = nil
}
