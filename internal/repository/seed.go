package repository

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"productivity/internal/domain"
)

// SampleCategories are created on first boot, in this order.
var SampleCategories = []string{
	"Time Management",
	"Focus & Concentration",
	"Organization",
	"Planning",
	"Wellness",
	"Efficiency",
	"Leadership",
	"Technology",
}

// SampleTip is one entry of the built-in catalog.
type SampleTip struct {
	Category string
	Text     string
}

var SampleTips = []SampleTip{
	{Category: "Time Management", Text: "Use the Pomodoro Technique: Work for 25 minutes, then take a 5-minute break to maintain focus and prevent burnout."},
	{Category: "Planning", Text: "Start your day by completing your most important task first (Eat the Frog)."},
	{Category: "Focus & Concentration", Text: "Minimize distractions by turning off non-essential notifications during work hours."},
	{Category: "Efficiency", Text: "Use the 2-minute rule: If a task takes less than 2 minutes, do it immediately."},
	{Category: "Wellness", Text: "Take regular breaks to prevent burnout and maintain mental clarity."},
	{Category: "Organization", Text: "Use templates and checklists for recurring processes to ensure consistency."},
	{Category: "Time Management", Text: "Batch similar tasks together to maintain focus and reduce context switching."},
	{Category: "Focus & Concentration", Text: "Practice deep work: Set aside uninterrupted time for your most complex tasks."},
	{Category: "Leadership", Text: "Lead by example: Demonstrate the behaviors and work ethic you expect from your team."},
	{Category: "Leadership", Text: "Practice active listening: Give team members your full attention and ask clarifying questions."},
	{Category: "Leadership", Text: "Provide specific, constructive feedback regularly rather than waiting for formal reviews."},
	{Category: "Leadership", Text: "Delegate effectively: Match tasks to team members' strengths and provide clear expectations."},
	{Category: "Leadership", Text: "Recognize and celebrate team achievements publicly to boost morale and motivation."},
	{Category: "Leadership", Text: "Make data-driven decisions: Use metrics and analytics to guide your team's direction."},
	{Category: "Leadership", Text: "Foster psychological safety: Create an environment where team members feel safe to share ideas and concerns."},
	{Category: "Leadership", Text: "Invest in your team's growth: Provide learning opportunities and career development support."},
	{Category: "Technology", Text: "Use keyboard shortcuts to navigate your favorite apps 50% faster than using a mouse."},
	{Category: "Technology", Text: "Set up automated backups for all important files to prevent data loss disasters."},
	{Category: "Technology", Text: "Learn to use version control systems like Git to track changes and collaborate effectively."},
	{Category: "Technology", Text: "Use password managers to generate and store unique, strong passwords for all accounts."},
	{Category: "Technology", Text: "Automate repetitive tasks with tools like IFTTT, Zapier, or simple scripts."},
	{Category: "Technology", Text: "Keep your software updated to benefit from security patches and new features."},
	{Category: "Technology", Text: "Use cloud storage services for seamless file access across all your devices."},
	{Category: "Technology", Text: "Learn basic command line operations to perform tasks more efficiently than GUI alternatives."},
	{Category: "Technology", Text: "Use dual monitors or ultrawide displays to increase your screen real estate and multitasking ability."},
	{Category: "Technology", Text: "Implement the 3-2-1 backup rule: 3 copies of data, 2 on different media, 1 offsite."},
	{Category: "Time Management", Text: "Time-box your tasks: Assign specific durations to activities to prevent them from expanding unnecessarily."},
	{Category: "Time Management", Text: "Use the Getting Things Done (GTD) method: Capture everything in a trusted system and regularly review."},
	{Category: "Time Management", Text: "Apply Parkinson's Law: Set tighter deadlines to force yourself to work more efficiently."},
	{Category: "Time Management", Text: "Schedule your most important work during your peak energy hours."},
	{Category: "Planning", Text: "Use the SMART criteria for goal setting: Specific, Measurable, Achievable, Relevant, Time-bound."},
	{Category: "Planning", Text: "Plan your week every Sunday: Set priorities and prepare for upcoming challenges."},
	{Category: "Planning", Text: "Create project roadmaps to visualize timelines and dependencies."},
	{Category: "Planning", Text: "Use backward planning: Start with your deadline and work backwards to create milestones."},
	{Category: "Planning", Text: "Conduct regular planning reviews to adjust strategies based on what's working."},
	{Category: "Focus & Concentration", Text: "Use the Forest app or similar tools to gamify staying off your phone during work."},
	{Category: "Focus & Concentration", Text: "Practice single-tasking: Focus on one task at a time for better quality results."},
	{Category: "Focus & Concentration", Text: "Create environmental cues for focus: Use specific music, lighting, or workspace setups."},
	{Category: "Focus & Concentration", Text: "Apply the 90-minute rule: Work in focused sprints aligned with your natural attention cycles."},
	{Category: "Focus & Concentration", Text: "Use the 'Do Not Disturb' mode on all devices during important work sessions."},
	{Category: "Efficiency", Text: "Create and use email templates for common responses to save time."},
	{Category: "Efficiency", Text: "Use the ABCDE method: Prioritize tasks by consequences (A=must do, E=eliminate)."},
	{Category: "Efficiency", Text: "Implement the one-touch rule: Handle emails and documents only once when possible."},
	{Category: "Efficiency", Text: "Use voice-to-text software to speed up writing and note-taking."},
	{Category: "Efficiency", Text: "Master touch typing to increase your writing speed by 30-50%."},
	{Category: "Wellness", Text: "Follow the 20-20-20 rule: Every 20 minutes, look at something 20 feet away for 20 seconds."},
	{Category: "Wellness", Text: "Stay hydrated: Keep a water bottle at your desk and drink regularly throughout the day."},
	{Category: "Wellness", Text: "Practice the 4-7-8 breathing technique for quick stress relief and focus."},
	{Category: "Wellness", Text: "Take walking meetings when possible to combine exercise with work discussions."},
	{Category: "Wellness", Text: "Maintain good posture and ergonomics to prevent long-term health issues."},
	{Category: "Wellness", Text: "Establish boundaries between work and personal time to prevent burnout."},
	{Category: "Organization", Text: "Implement the PARA method: Projects, Areas, Resources, Archive for digital organization."},
	{Category: "Organization", Text: "Use the 'two-minute rule': If it takes less than two minutes, do it now instead of adding to your list."},
	{Category: "Organization", Text: "Create a designated inbox for all incoming tasks, ideas, and documents."},
	{Category: "Organization", Text: "Organize your digital files with consistent naming conventions and folder structures."},
	{Category: "Organization", Text: "Conduct weekly reviews to clean up your workspace and systems."},
	{Category: "Organization", Text: "Use color-coding systems for different types of tasks or projects."},
}

// SeedOptions controls sample data generation.
type SeedOptions struct {
	// Randomize fills views, favorites and rating with plausible values
	// (views 500-1499, favorites 20-119, rating 4.0-5.0 stored x10).
	Randomize bool
	Rand      *rand.Rand
	// Now anchors createdAt; tip i is created i days before Now.
	Now time.Time
}

// Seed creates the sample categories and, when the store holds no tips yet,
// imports the sample catalog. It is safe to call on every boot.
func Seed(ctx context.Context, store Store, opts SeedOptions) (int, error) {
	for _, name := range SampleCategories {
		if _, err := store.CreateCategory(ctx, name); err != nil && !errors.Is(err, ErrCategoryExists) {
			return 0, err
		}
	}

	existing, err := store.ListTips(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(opts.Now.UnixNano()))
	}

	for i, s := range SampleTips {
		tip := domain.Tip{
			Text:      s.Text,
			Category:  s.Category,
			CreatedAt: opts.Now.Add(-time.Duration(i) * 24 * time.Hour),
		}
		if opts.Randomize {
			tip.Views = rng.Intn(1000) + 500
			tip.Favorites = rng.Intn(100) + 20
			tip.Rating = rng.Intn(11) + 40
		}
		if _, err := store.ImportTip(ctx, tip); err != nil {
			return i, err
		}
	}
	return len(SampleTips), nil
}
