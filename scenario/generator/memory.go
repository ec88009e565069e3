package generator

import (
	"fmt"

	"github.com/crisisbench/crisisbench/scenario"
)

// memoryFileKeys is the fixed set of six bootstrapped memory files
// simulating roughly a week of accumulated agent history, per §4.2.8.
var memoryFileKeys = []string{
	"user_profile", "preferences", "health_baseline",
	"work_context", "recurring_notes", "yesterday",
}

// BuildMemoryFiles deterministically renders the six bootstrap memory files
// personalized to person and agentIdentity. Content is static text, not
// randomly sampled: the memory bootstrap exists to simulate accumulated
// history, not to add entropy to the scenario.
func BuildMemoryFiles(person *scenario.PersonProfile, agentIdentity *scenario.AgentIdentity) ([]*scenario.MemoryFile, error) {
	contents := map[string]string{
		"user_profile": fmt.Sprintf(
			"# User Profile\n\n%s, age %d, works as %s.\nHome: %s\nOffice: %s\n",
			person.Name, person.Age, person.Occupation, person.HomeAddress, person.OfficeAddress),
		"preferences": fmt.Sprintf(
			"# Preferences\n\n%s prefers concise updates from %s and likes to be reminded about recurring tasks a day ahead.\n",
			person.Name, agentIdentity.Name),
		"health_baseline": fmt.Sprintf(
			"# Baseline Notes\n\n%s usually has a resting heart rate in the 60s and sleeps about 7 hours a night. Runs most weekday evenings.\n",
			person.Name),
		"work_context": fmt.Sprintf(
			"# Work Context\n\n%s is a %s. Typical day includes morning standups, a midday lunch, and focused afternoon work.\n",
			person.Name, person.Occupation),
		"recurring_notes": "# Recurring Notes\n\n- Parking pass renews monthly.\n- Gym membership auto-charges mid-month.\n",
		"yesterday": fmt.Sprintf(
			"# Yesterday\n\n%s had an uneventful day: standard commute, a few meetings, and an evening run. No notable incidents recorded.\n",
			person.Name),
	}

	files := make([]*scenario.MemoryFile, 0, len(memoryFileKeys))
	for _, key := range memoryFileKeys {
		mf, err := scenario.NewMemoryFile(key, contents[key])
		if err != nil {
			return nil, err
		}
		files = append(files, mf)
	}
	return files, nil
}
