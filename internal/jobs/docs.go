// Package jobs provides scheduled background tasks.
//
// Jobs are cron-based (github.com/robfig/cron/v3, six-field schedules with seconds) and
// are managed through JobManager:
//
//	relay := jobs.NewOutboxRelayJob(relayHandler, "*/5 * * * * *", 100, logger)
//	manager := jobs.NewJobManager(relay)
//
//	if err := manager.StartAll(); err != nil {
//		return err
//	}
//	defer manager.StopAll()
//
// # Available Jobs
//
// OutboxRelayJob publishes domain events recorded in the outbox table to the message
// broker. A failed publish is logged and retried on the next tick; delivery is at least
// once.
package jobs
