package portfolio

const (
	SiteOwner = "Jeffrey Smith"

	Tagline = `Software developer building cloud-backed web applications, data tools and the
	APIs that hold them together.`

	AboutMe = `I build software that makes day-to-day operations easier to run. Most of my work
	has been at Amazon, where I moved from analysing warehouse data to writing the tools and
	serverless services that replaced the spreadsheets. I like problems where the data is messy,
	the users are busy, and the fix has to keep working long after the launch email.
	Outside of work I am usually reading about distributed systems, or away from a screen entirely.`

	ServicesIntro = `A few of the things I can help with, from a single endpoint to a full internal tool.`

	ContactIntro = `Have a project in mind or a role to talk about? Send a note and I will get back to you.`

	ContactSent  = "Your message has been sent. I'll get back to you soon."
	ContactError = "Sorry, there was an error sending your message. Please try again later."
)
