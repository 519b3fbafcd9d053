package proposal

// Exhibit is one portfolio proof point attachable to a proposal.
type Exhibit struct {
	Name      string
	Stars     string // GitHub star count, when the proof is a repository
	Live      string // live deployment URL, when the proof is a product
	GitHub    string
	Relevance string
	Detail    string
}

// exhibitRule maps trigger keywords in a listing to a category exhibit.
type exhibitRule struct {
	keywords []string
	exhibit  Exhibit
}

// baselineExhibit is attached to every proposal as social proof.
var baselineExhibit = Exhibit{
	Name:      "Terminal Velocity",
	Stars:     "1.1k",
	Relevance: "Content quality + AI review system",
	GitHub:    "github.com/nlr-ai/terminal-velocity",
}

// supplementalExhibit is appended when keyword matching found nothing beyond
// the baseline, so a proposal never ships with a single proof point.
var supplementalExhibit = Exhibit{
	Name:      "La Serenissima",
	Live:      "serenissima.ai",
	Relevance: "97+ autonomous agents, production-grade infrastructure",
	Detail:    "Proves we can handle complex AI systems at scale",
}

var exhibitRules = []exhibitRule{
	{
		keywords: []string{"healthcare", "hipaa", "medical", "patient", "therapy", "health"},
		exhibit: Exhibit{
			Name:      "TherapyKin",
			Live:      "therapykin.ai",
			Relevance: "HIPAA-aware healthcare AI, 121+ deployments",
			Detail:    "Text + voice AI companion for mental health support",
		},
	},
	{
		keywords: []string{"agent", "multi-agent", "orchestr", "coordinator"},
		exhibit: Exhibit{
			Name:      "La Serenissima",
			Live:      "serenissima.ai",
			Relevance: "97+ autonomous agents, 99.7% uptime over 6 months",
			Detail:    "AI city with event-native architecture and agent coordination",
		},
	},
	{
		keywords: []string{"trading", "finance", "invest", "market"},
		exhibit: Exhibit{
			Name:      "KinKong",
			Live:      "konginvest.ai",
			Relevance: "$7M capital, Solana DEX trading bot",
			Detail:    "Real-money trading system with risk management",
		},
	},
}
