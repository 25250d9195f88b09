package pathing

import (
	"strings"

	"github.com/jonathan/careerview/internal/types"
)

type courseFamily struct {
	keywords []string
	courses  []types.Course
}

// Families are checked in order; the first whose keyword occurs in the skill wins.
var courseFamilies = []courseFamily{
	{
		keywords: []string{"programming", "coding", "python", "javascript", "java", "web development", "software"},
		courses: []types.Course{
			{Name: "CS50: Introduction to Computer Science", Provider: "Harvard University (edX)", Duration: "12 weeks", Cost: "Free", URL: "https://www.edx.org/course/cs50s-introduction-computer-science-harvardx-cs50x"},
			{Name: "Python for Everybody", Provider: "University of Michigan (Coursera)", Duration: "7 months", Cost: "Free", URL: "https://www.coursera.org/specializations/python"},
			{Name: "The Web Developer Bootcamp", Provider: "Colt Steele (Udemy)", Duration: "46 hours", Cost: "$89.99", URL: "https://www.udemy.com/course/the-web-developer-bootcamp/"},
		},
	},
	{
		keywords: []string{"data", "analytics", "statistics", "machine learning", "ai"},
		courses: []types.Course{
			{Name: "Machine Learning", Provider: "Stanford University (Coursera)", Duration: "11 weeks", Cost: "Free", URL: "https://www.coursera.org/learn/machine-learning"},
			{Name: "Data Science Specialization", Provider: "Johns Hopkins (Coursera)", Duration: "10 months", Cost: "$49/month", URL: "https://www.coursera.org/specializations/jhu-data-science"},
			{Name: "Introduction to Data Science", Provider: "IBM (Coursera)", Duration: "4 months", Cost: "Free", URL: "https://www.coursera.org/learn/introduction-data-science"},
		},
	},
	{
		keywords: []string{"design", "ui", "ux", "graphic", "visual", "creative", "adobe", "photoshop", "illustrator"},
		courses: []types.Course{
			{Name: "Google UX Design Certificate", Provider: "Google (Coursera)", Duration: "6 months", Cost: "$39/month", URL: "https://www.coursera.org/professional-certificates/google-ux-design"},
			{Name: "Graphic Design Specialization", Provider: "CalArts (Coursera)", Duration: "6 months", Cost: "$49/month", URL: "https://www.coursera.org/specializations/graphic-design"},
			{Name: "Adobe Creative Suite", Provider: "Adobe", Duration: "Self-paced", Cost: "$20.99/month", URL: "https://www.adobe.com/creativecloud.html"},
		},
	},
	{
		keywords: []string{"business", "management", "leadership", "project", "marketing", "sales", "finance"},
		courses: []types.Course{
			{Name: "Business Foundations", Provider: "University of Pennsylvania (Coursera)", Duration: "4 months", Cost: "Free", URL: "https://www.coursera.org/specializations/wharton-business-foundations"},
			{Name: "Project Management Professional (PMP)", Provider: "PMI", Duration: "35 hours", Cost: "$405", URL: "https://www.pmi.org/certifications/project-management-pmp"},
			{Name: "Digital Marketing", Provider: "Google (Coursera)", Duration: "6 months", Cost: "$39/month", URL: "https://www.coursera.org/professional-certificates/google-digital-marketing-ecommerce"},
		},
	},
	{
		keywords: []string{"architecture", "construction", "engineering", "autocad", "revit", "building"},
		courses: []types.Course{
			{Name: "Architecture and Design", Provider: "MIT OpenCourseWare", Duration: "Self-paced", Cost: "Free", URL: "https://ocw.mit.edu/courses/architecture/"},
			{Name: "AutoCAD Certification", Provider: "Autodesk", Duration: "40 hours", Cost: "$99", URL: "https://www.autodesk.com/certification"},
			{Name: "Sustainable Design", Provider: "Harvard Graduate School of Design", Duration: "8 weeks", Cost: "$1,500", URL: "https://www.gsd.harvard.edu/"},
		},
	},
	{
		keywords: []string{"communication", "presentation", "writing", "public speaking"},
		courses: []types.Course{
			{Name: "Communication Skills", Provider: "University of London (Coursera)", Duration: "4 weeks", Cost: "Free", URL: "https://www.coursera.org/learn/communication-skills"},
			{Name: "Public Speaking", Provider: "University of Washington (Coursera)", Duration: "4 weeks", Cost: "Free", URL: "https://www.coursera.org/learn/public-speaking"},
			{Name: "Business Writing", Provider: "University of Colorado (Coursera)", Duration: "4 weeks", Cost: "Free", URL: "https://www.coursera.org/learn/business-writing"},
		},
	},
}

// CoursesFor returns three course recommendations for skill.
func CoursesFor(skill string) []types.Course {
	lower := strings.ToLower(skill)
	for _, fam := range courseFamilies {
		for _, k := range fam.keywords {
			if strings.Contains(lower, k) {
				return append([]types.Course(nil), fam.courses...)
			}
		}
	}
	return []types.Course{
		{Name: "Introduction to " + skill, Provider: "Coursera", Duration: "4-6 weeks", Cost: "Free-$99", URL: "https://www.coursera.org"},
		{Name: "Advanced " + skill, Provider: "Udemy", Duration: "8-12 weeks", Cost: "$200-$500", URL: "https://www.udemy.com"},
		{Name: skill + " Fundamentals", Provider: "edX", Duration: "6-8 weeks", Cost: "Free-$150", URL: "https://www.edx.org"},
	}
}

var bigTech = []string{"Google", "Microsoft", "Amazon", "Meta", "Apple", "Netflix", "Tesla", "Uber"}

var marketData = map[string]types.MarketInsights{
	"software_developer": {
		GrowthRate: "+22%",
		AvgSalary:  "$105K",
		KeySkills:  []string{"Python", "JavaScript", "React", "Node.js", "SQL", "Git", "Docker", "AWS"},
	},
	"data_scientist": {
		GrowthRate: "+35%",
		AvgSalary:  "$120K",
		KeySkills:  []string{"Python", "R", "SQL", "Machine Learning", "Statistics", "Pandas", "TensorFlow", "Jupyter"},
	},
	"product_manager": {
		GrowthRate: "+18%",
		AvgSalary:  "$125K",
		KeySkills:  []string{"Product Strategy", "Data Analysis", "User Research", "Agile", "SQL", "Figma", "Jira", "Analytics"},
	},
	"ux_designer": {
		GrowthRate: "+15%",
		AvgSalary:  "$95K",
		KeySkills:  []string{"User Research", "Figma", "Prototyping", "Design Thinking", "Usability Testing", "Sketch", "Adobe XD", "InVision"},
	},
	"devops_engineer": {
		GrowthRate: "+25%",
		AvgSalary:  "$115K",
		KeySkills:  []string{"Docker", "Kubernetes", "AWS", "Linux", "CI/CD", "Terraform", "Jenkins", "Monitoring"},
	},
}

// MarketInsightsFor returns the market table entry for careerID, or a general default.
func MarketInsightsFor(careerID string) types.MarketInsights {
	if m, ok := marketData[careerID]; ok {
		m.TopCompanies = append([]string(nil), bigTech...)
		m.KeySkills = append([]string(nil), m.KeySkills...)
		return m
	}
	return types.MarketInsights{
		GrowthRate:   "+15%",
		AvgSalary:    "$85K",
		TopCompanies: append([]string(nil), bigTech[:5]...),
		KeySkills:    []string{"Communication", "Problem Solving", "Leadership", "Analytics", "Project Management"},
	}
}
