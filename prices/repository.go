package prices

import (
	"errors"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/koitsu/thorchain-cryptotax/config"
)

// UpdateRepositoryOnDisk clones the price data repository into dir, or pulls it when already cloned.
func UpdateRepositoryOnDisk(repoURL, dir string) error {
	_, err := os.Stat(dir)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	if os.IsNotExist(err) {
		err = os.MkdirAll(dir, 0o777)
		if err != nil {
			return err
		}
	}

	config.Log.Infof("Cloning price data %s into %s", repoURL, dir)

	_, err = git.PlainClone(dir, false, &git.CloneOptions{
		URL: repoURL,
	})

	if err != nil && !errors.Is(err, git.ErrRepositoryAlreadyExists) {
		return err
	} else if errors.Is(err, git.ErrRepositoryAlreadyExists) {
		r, err := git.PlainOpen(dir)
		if err != nil {
			return err
		}

		w, err := r.Worktree()
		if err != nil {
			return err
		}

		err = w.Pull(&git.PullOptions{})
		// Ignore up-to-date error
		if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
			return err
		}
		config.Log.Info("Price data is up to date")
	}

	return nil
}
