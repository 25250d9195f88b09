package parsing

// skillCategory is one row of the skill table. Phrases are lower-case and
// each phrase belongs to exactly one category.
type skillCategory struct {
	Name    string
	Phrases []string
}

// skillTable is ordered; AllSkills is flattened in this order.
var skillTable = []skillCategory{
	{"programming_languages", []string{
		"python", "javascript", "typescript", "java", "c++", "c#", "c", "go", "rust",
		"php", "ruby", "swift", "kotlin", "scala", "r", "matlab", "sql", "html",
		"css", "bash", "shell", "powershell", "perl", "lua", "dart", "objective-c",
	}},
	{"web_technologies", []string{
		"react", "vue", "angular", "node.js", "express", "next.js", "nuxt.js",
		"django", "flask", "fastapi", "spring", "laravel", "rails", "asp.net",
		"jquery", "bootstrap", "tailwind", "sass", "less", "webpack", "vite",
	}},
	{"ai_ml_data", []string{
		"machine learning", "deep learning", "artificial intelligence", "data science",
		"tensorflow", "pytorch", "keras", "scikit-learn", "pandas", "numpy", "matplotlib",
		"seaborn", "plotly", "jupyter", "anaconda", "opencv", "nltk", "spacy",
		"transformers", "bert", "gpt", "llm", "neural networks", "cnn", "rnn", "lstm",
	}},
	{"cloud_devops", []string{
		"aws", "azure", "gcp", "google cloud", "docker", "kubernetes", "jenkins",
		"ci/cd", "terraform", "ansible", "chef", "puppet", "gitlab", "github actions",
		"circleci", "travis ci", "helm", "istio", "prometheus", "grafana", "elk stack",
	}},
	{"databases", []string{
		"postgresql", "mysql", "mongodb", "redis", "elasticsearch", "cassandra",
		"dynamodb", "sqlite", "oracle", "sql server", "neo4j", "influxdb",
		"clickhouse", "snowflake", "bigquery", "redshift",
	}},
	{"mobile", []string{
		"ios", "android", "react native", "flutter", "xamarin", "ionic",
		"cordova", "phonegap",
	}},
	{"tools_platforms", []string{
		"git", "github", "bitbucket", "jira", "confluence", "slack",
		"figma", "sketch", "adobe", "photoshop", "illustrator", "vs code",
		"intellij", "eclipse", "xcode", "postman", "insomnia", "swagger",
	}},
	{"frameworks_libraries", []string{
		"spring boot", "hibernate", "junit", "mockito", "selenium", "cypress",
		"jest", "mocha", "chai", "pytest", "unittest", "rspec", "cucumber",
	}},
	{"architecture", []string{
		"microservices", "api", "rest", "graphql", "grpc", "soap", "mvc", "mvp",
		"clean architecture", "domain driven design", "event sourcing", "cqrs",
		"serverless", "lambda", "azure functions", "cloud functions",
	}},
	{"business_soft", []string{
		"agile", "scrum", "kanban", "project management", "product management",
		"business analysis", "stakeholder management", "team leadership",
		"communication", "problem solving", "critical thinking", "mentoring",
	}},
}

// SkillCategories returns the category names in table order
func SkillCategories() []string {
	names := make([]string, len(skillTable))
	for i, c := range skillTable {
		names[i] = c.Name
	}
	return names
}

var jobTitles = []string{
	// software engineering
	"software engineer", "software developer", "full stack developer", "frontend developer",
	"backend developer", "mobile developer", "ios developer", "android developer",
	"web developer", "application developer", "systems engineer", "platform engineer",

	// ai, ml and data
	"data scientist", "machine learning engineer", "ai engineer", "data engineer",
	"data analyst", "research scientist", "ml engineer", "deep learning engineer",
	"computer vision engineer", "nlp engineer", "ai researcher",

	// infrastructure
	"devops engineer", "site reliability engineer", "sre", "cloud engineer",
	"infrastructure engineer", "build engineer", "release engineer",

	// specialised engineering
	"embedded systems engineer", "firmware engineer", "hardware engineer",
	"security engineer", "cybersecurity engineer", "network engineer",
	"database administrator", "dba", "systems administrator",

	// leadership
	"engineering manager", "technical lead", "team lead", "staff engineer",
	"principal engineer", "senior engineer", "lead developer", "architect",
	"solutions architect", "technical architect", "software architect",

	// entry level
	"intern", "software engineering intern", "ai intern", "data science intern",
	"software development intern", "engineering intern", "co-op", "trainee",

	// product and design
	"product manager", "ux designer", "ui designer", "product designer",
	"technical product manager", "growth engineer", "qa engineer", "test engineer",

	// other technical
	"technical writer", "developer advocate", "solutions engineer",
	"field engineer", "support engineer", "integration engineer",
}

// roleIndicators confirm a line names a position even without a nearby date
var roleIndicators = []string{
	"intern", "developer", "engineer", "manager", "analyst", "specialist",
	"coordinator", "consultant", "architect", "lead", "senior", "junior",
	"associate", "principal", "staff", "director",
}

var titleSectionHeaders = map[string]bool{
	"experience":       true,
	"education":        true,
	"projects":         true,
	"skills":           true,
	"technical skills": true,
}

var educationKeywords = []string{
	"bachelor", "master", "phd", "doctorate", "degree", "university", "college",
	"computer science", "engineering", "business", "marketing", "design", "mathematics",
	"statistics", "economics", "psychology", "mba", "certification", "certified",
	"applied sciences", "computer engineering", "software engineering", "data science",
	"artificial intelligence", "machine learning", "information technology", "it",
	"electrical engineering", "mechanical engineering", "civil engineering",
	"biomedical engineering", "chemical engineering", "aerospace engineering",
}

var educationStartHeaders = map[string]bool{
	"education":           true,
	"academic background": true,
	"qualifications":      true,
}

var educationEndHeaders = map[string]bool{
	"experience":       true,
	"projects":         true,
	"skills":           true,
	"technical skills": true,
	"work experience":  true,
}

// entityStopwords drop recognizer hits that are places or institutions
var entityStopwords = map[string]bool{
	"waterloo": true, "university": true, "college": true,
	"toronto": true, "ontario": true, "canada": true,
}

// nameSkipPatterns reject a header line outright
var nameSkipPatterns = []string{
	`@`, `\.com`, `\.edu`, `\.org`, `http`, `www`,
	`\d{3}[-.\s]?\d{3}[-.\s]?\d{4}`,
	`university`, `college`, `school`, `institute`,
	`linkedin`, `github`, `email`, `phone`, `waterloo`,
	`candidate`, `bachelor`, `master`, `degree`,
	`engineering`, `sciences`, `computer`, `applied`,
}

var nonNameWords = map[string]bool{
	"university": true, "college": true, "waterloo": true, "toronto": true, "ontario": true,
	"canada": true, "experience": true, "education": true, "skills": true, "projects": true,
	"summary": true, "objective": true, "candidate": true, "bachelor": true, "master": true,
	"engineering": true, "sciences": true, "computer": true, "applied": true, "sept": true,
	"april": true, "may": true, "august": true, "january": true, "february": true, "march": true,
}

// disallowedNameFragments disqualify a candidate under the plausibility rule
var disallowedNameFragments = []string{"university", "college", "waterloo", "inc", "ltd", "corp"}
