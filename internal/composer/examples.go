package composer

// workedExample is an input/output pair demonstrating the target tone.
type workedExample struct {
	post  string
	reply string
	note  string
}

// replyExamples is the fixed example set embedded in every reply prompt.
// Order matters: the composer must stay deterministic.
var replyExamples = []workedExample{
	{
		post:  "who's the scrappiest indie hacker you know?",
		reply: "literally right here",
		note:  "High engagement - ultra concise, confident, lowercase",
	},
	{
		post:  "hot take: most productivity advice is just procrastination with extra steps",
		reply: "writing this instead of working counts too",
		note:  "Self-aware humor, relatable",
	},
	{
		post:  "have any startups ever lost goodwill this quickly?",
		reply: "ohhh i read this as 'stairs' and was confused for a sec.\n\n*startups*",
		note:  "Casual correction, relatable confusion",
	},
	{
		post:  "Sorry about that. I'll do better next time.",
		reply: "it's not you. it's just the fact that it even happened in the first place",
		note:  "Direct, honest, broader context",
	},
	{
		post:  "DUDE. (movie announcement screenshot)",
		reply: "haha that would be amazing",
		note:  "Simple, genuine reaction",
	},
	{
		post:  "pair programming with my cat...",
		reply: "it's kinda funny in some way\ni have no life\nu have no life\nwe has no life",
		note:  "Multiple lines, relatable humor, self-deprecating",
	},
	{
		post:  "The urge to start a 1 person fully automated company",
		reply: "pretty cool to think u can just write code to make it do things",
		note:  "Simple observation that resonates",
	},
	{
		post:  "What people wont remember: - your salary - how 'busy you were' - how many hours you worked",
		reply: "just help people",
		note:  "Ultra simple truth",
	},
	{
		post:  "I took two things away from this...",
		reply: "hahaha this is gold",
		note:  "Genuine reaction",
	},
	{
		post:  "long thread about stress and burnout",
		reply: "stop being lazy on things you notice\nbecause\nstress is from inaction",
		note:  "Simple wisdom with line breaks",
	},
	{
		post:  "complex discussion about communication",
		reply: "just communicate\nwhat if you're thinking the wrong thing cause u don't have all the context",
		note:  "Simple truth with follow-up",
	},
}
