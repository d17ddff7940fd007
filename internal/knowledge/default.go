package knowledge

import "adastra/internal/domain"

const (
	defaultGreeting = "Hello! I'm the Ad Astra assistant. How can I help you today?"

	defaultFallback = "I appreciate your question. For specific inquiries, I'd recommend reaching out to our team directly through the Contact page or WhatsApp at +91 98441 10041. I can help you with information about our services, industries we serve, career opportunities, and our company background."
)

var defaultQuickReplies = []string{
	"What services do you offer?",
	"Which industries do you serve?",
	"How can I contact you?",
	"Tell me about Ad Astra",
}

var defaultEntries = []domain.KnowledgeEntry{
	{
		Keywords: []string{"who", "about", "what is", "company", "ad astra", "tell me"},
		Answer:   "Ad Astra Consultants is a global talent solutions and advisory firm with 18+ years of experience. We help organisations secure high-impact talent and professionals unlock meaningful career opportunities across 30+ countries.",
	},
	{
		Keywords: []string{"service", "what do you", "offer", "solutions", "do you do"},
		Answer:   "We offer: Executive Search, Contingency Hiring, Recruitment Process Outsourcing (RPO), Temporary & Contract Staffing, Workforce Advisory, and Market Intelligence & Research. Visit our Solutions page for details.",
	},
	{
		Keywords: []string{"executive search", "leadership", "cxo", "c-suite"},
		Answer:   "Our Executive Search practice specialises in CXO and senior leadership hiring. We complete leadership mandates within 60-90 days with 3X faster closures compared to traditional market cycles.",
	},
	{
		Keywords: []string{"rpo", "outsourcing", "recruitment process"},
		Answer:   "Our RPO solutions reduce average time-to-hire by up to 40%. We build embedded recruitment teams for large enterprises and support multi-location hiring expansions.",
	},
	{
		Keywords: []string{"industry", "sector", "industries", "which industries"},
		Answer:   "We serve 8 major sectors: Technology & Digital Services, Manufacturing & Engineering, BFSI, Healthcare & Life Sciences, Logistics & Supply Chain, Energy & Electric Mobility, Consumer & Retail, and High-Growth Startups.",
	},
	{
		Keywords: []string{"contact", "reach", "phone", "email", "touch", "connect"},
		Answer:   "You can reach us through our Contact page or WhatsApp at +91 98441 10041. You can also book a consultation directly through our website.",
	},
	{
		Keywords: []string{"career", "job", "work", "hiring", "apply", "find job", "opportunity"},
		Answer:   "Looking for career opportunities? Visit our Find Jobs page to explore current openings. You can also submit your CV directly through our website for future opportunities.",
	},
	{
		Keywords: []string{"talent", "hire", "recruit", "find talent", "staffing"},
		Answer:   "Need to hire? Visit our Find Talent page. We provide Executive Search, Contingency Hiring, RPO, and Contract Staffing solutions tailored to your needs.",
	},
	{
		Keywords: []string{"country", "global", "location", "where", "office", "geography"},
		Answer:   "We operate across 30+ countries globally, including offices in Bangalore, Mumbai, Delhi, Kolkata, Coimbatore, Singapore, London, and Amsterdam.",
	},
	{
		Keywords: []string{"founder", "leadership", "team", "who runs", "management"},
		Answer:   "Ad Astra was founded by Jayanthi Yeshwant Kumar (Chairperson) and Nirupama VG (Managing Director & Co-Founder), along with Sourav Bose (Co-Founder & VP) and Bikram (VP). Together they bring 100+ years of combined experience.",
	},
	{
		Keywords: []string{"women", "diversity", "inclusion", "women-owned"},
		Answer:   "Ad Astra is India's largest women-owned recruitment solutions firm with an 80% women workforce, championing diversity and inclusion in the industry.",
	},
	{
		Keywords: []string{"placement", "track record", "success", "result", "impact", "stats"},
		Answer:   "Our track record: 10,000+ successful placements, 95% client retention rate, 250+ hiring specialists, 18+ years of experience, and operations across 30+ countries.",
	},
	{
		Keywords: []string{"temporary", "contract", "staffing", "flexible"},
		Answer:   "Our Temporary & Contract Staffing solutions offer rapid deployment of skilled professionals, seamless payroll & compliance management, and flexible workforce scaling during seasonal or project cycles.",
	},
	{
		Keywords: []string{"technology", "tech", "it", "digital", "ai", "cyber"},
		Answer:   "In Technology & Digital Services, we support Product & Engineering leadership, AI/ML/Data Science, Cybersecurity, Cloud & DevOps roles, and IT services scaling.",
	},
	{
		Keywords: []string{"cost", "price", "pricing", "fee", "how much"},
		Answer:   "Our pricing is customised based on the engagement model and scope. Please reach out to us for a detailed consultation - we'll be happy to provide a tailored proposal.",
	},
	{
		Keywords: []string{"thank", "thanks", "bye", "goodbye"},
		Answer:   "Thank you for your interest in Ad Astra Consultants! Feel free to reach out anytime. You can also contact us on WhatsApp at +91 98441 10041.",
	},
	{
		Keywords: []string{"hello", "hi", "hey", "good morning", "good evening"},
		Answer:   "Hello! Welcome to Ad Astra Consultants. How can I help you today? I can answer questions about our services, industries, career opportunities, or anything else about our company.",
	},
}

// Default returns a fresh copy of the built-in knowledge base.
func Default() domain.KnowledgeBase {
	return domain.KnowledgeBase{
		Greeting:     defaultGreeting,
		Fallback:     defaultFallback,
		QuickReplies: defaultQuickReplies,
		Entries:      defaultEntries,
	}.Clone()
}
