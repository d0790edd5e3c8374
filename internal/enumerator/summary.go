package enumerator

import (
	"strings"

	"github.com/credprobe/credprobe/internal/models"
)

// deriveOverview computes the cross-cutting summary counts once over
// the finished snapshot, so they can never disagree with node contents.
func deriveOverview(snap *models.CompanySnapshot) models.ActionsOverview {
	overview := models.ActionsOverview{
		RunnersByLabel: map[string]models.LabelCount{},
	}

	if snap.Repos != nil {
		overview.RepositoryCount = len(snap.Repos.Repos)
	}
	if snap.OrgSecrets != nil {
		overview.OrgSecrets = len(snap.OrgSecrets.Secrets)
	}

	for _, node := range snap.RepoWorkflows {
		if len(node.Workflows) > 0 {
			overview.WorkflowRepositories++
			overview.WorkflowTotal += len(node.Workflows)
		}
	}
	for _, node := range snap.RepoSecrets {
		if len(node.Secrets) > 0 {
			overview.SecretRepositories++
		}
	}
	for _, node := range snap.RepoRunners {
		if len(node.Runners) > 0 {
			overview.RunnerRepositories++
		}
	}

	countRunners := func(node *models.Node) {
		if node == nil {
			return
		}
		for _, runner := range node.Runners {
			online := strings.EqualFold(runner.Status, "online")
			if online {
				overview.RunnersOnline++
			} else {
				overview.RunnersOffline++
			}
			for _, label := range runner.Labels {
				count := overview.RunnersByLabel[label]
				count.Total++
				if online {
					count.Online++
				}
				overview.RunnersByLabel[label] = count
			}
		}
	}

	countRunners(snap.OrgRunners)
	countRunners(snap.EnterpriseRunners)
	for _, node := range snap.RepoRunners {
		countRunners(node)
	}

	if len(overview.RunnersByLabel) == 0 {
		overview.RunnersByLabel = nil
	}
	return overview
}
