package enumerator

import (
	"github.com/credprobe/credprobe/internal/models"
	"github.com/tidwall/gjson"
)

// Decoders trim raw API records down to the fields the snapshot keeps.
// They run on whatever pages completed, so partially failed nodes still
// carry their successfully fetched items.

func decodeMembers(node *models.Node, items []gjson.Result) {
	for _, m := range items {
		node.Members = append(node.Members, models.Member{
			Login:     m.Get("login").String(),
			ID:        m.Get("id").Int(),
			Type:      m.Get("type").String(),
			SiteAdmin: m.Get("site_admin").Bool(),
		})
	}
}

func decodeTeams(node *models.Node, items []gjson.Result) {
	for _, t := range items {
		node.Teams = append(node.Teams, models.Team{
			ID:          t.Get("id").Int(),
			Name:        t.Get("name").String(),
			Slug:        t.Get("slug").String(),
			Description: t.Get("description").String(),
			Privacy:     t.Get("privacy").String(),
			Permission:  t.Get("permission").String(),
		})
	}
}

func decodeRepos(node *models.Node, items []gjson.Result) {
	for _, r := range items {
		node.Repos = append(node.Repos, models.Repository{
			ID:            r.Get("id").Int(),
			Name:          r.Get("name").String(),
			FullName:      r.Get("full_name").String(),
			Private:       r.Get("private").Bool(),
			Fork:          r.Get("fork").Bool(),
			Archived:      r.Get("archived").Bool(),
			Disabled:      r.Get("disabled").Bool(),
			DefaultBranch: r.Get("default_branch").String(),
			Language:      r.Get("language").String(),
			OpenIssues:    int(r.Get("open_issues_count").Int()),
			Stargazers:    int(r.Get("stargazers_count").Int()),
			Forks:         int(r.Get("forks_count").Int()),
			PushedAt:      r.Get("pushed_at").String(),
		})
	}
}

func decodeWebhooks(node *models.Node, items []gjson.Result) {
	for _, w := range items {
		hook := models.Webhook{
			ID:          w.Get("id").Int(),
			Name:        w.Get("name").String(),
			Active:      w.Get("active").Bool(),
			URL:         w.Get("config.url").String(),
			ContentType: w.Get("config.content_type").String(),
		}
		for _, ev := range w.Get("events").Array() {
			hook.Events = append(hook.Events, ev.String())
		}
		node.Webhooks = append(node.Webhooks, hook)
	}
}

func decodeSecrets(node *models.Node, items []gjson.Result) {
	for _, s := range items {
		node.Secrets = append(node.Secrets, models.Secret{
			Name:       s.Get("name").String(),
			Visibility: s.Get("visibility").String(),
			CreatedAt:  s.Get("created_at").String(),
			UpdatedAt:  s.Get("updated_at").String(),
		})
	}
}

func decodeWorkflows(node *models.Node, items []gjson.Result) {
	for _, w := range items {
		node.Workflows = append(node.Workflows, models.Workflow{
			ID:    w.Get("id").Int(),
			Name:  w.Get("name").String(),
			Path:  w.Get("path").String(),
			State: w.Get("state").String(),
		})
	}
}

func decodeRunners(node *models.Node, items []gjson.Result) {
	for _, r := range items {
		runner := models.Runner{
			ID:     r.Get("id").Int(),
			Name:   r.Get("name").String(),
			OS:     r.Get("os").String(),
			Status: r.Get("status").String(),
			Busy:   r.Get("busy").Bool(),
		}
		for _, label := range r.Get("labels").Array() {
			if name := label.Get("name").String(); name != "" {
				runner.Labels = append(runner.Labels, name)
			}
		}
		node.Runners = append(node.Runners, runner)
	}
}
