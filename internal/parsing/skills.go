package parsing

import "strings"

// categorySkills is the ordered result of the skill pass for one category
type categorySkills struct {
	Category string
	Skills   []string
}

// extractSkills matches every table phrase by case-insensitive substring containment.
// Categories without a match are omitted; order follows skillTable.
func extractSkills(text string) []categorySkills {
	lower := strings.ToLower(text)
	var found []categorySkills
	for _, cat := range skillTable {
		var skills []string
		for _, phrase := range cat.Phrases {
			if strings.Contains(lower, phrase) {
				skills = append(skills, titleCase(phrase))
			}
		}
		if len(skills) > 0 {
			found = append(found, categorySkills{Category: cat.Name, Skills: skills})
		}
	}
	return found
}
