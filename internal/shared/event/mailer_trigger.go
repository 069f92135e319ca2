package event

// MailerTriggerDestination is where producers publish messages that fire the
// mail route. The body is the raw mail text.
const MailerTriggerDestination string = "mailer_trigger"

// MailerTriggerConsumerRoute names the route consumer in
// modules.mailer.consumer_names and in broker groups.
const MailerTriggerConsumerRoute string = "mailer_trigger_route"

// Header names carried by a trigger message.
const (
	MailerTriggerHeaderTo            string = "to"
	MailerTriggerHeaderCorrelationID string = "cID"
)
