package mail

type HotLeadEmailData struct {
	LeadName string
	Company  string
	Score    string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
}
