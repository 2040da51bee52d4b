package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maastricht-university/ami-topics/orchestrator"
)

func (a *app) meetingCmd() *cobra.Command {
	var stdout bool

	cmd := &cobra.Command{
		Use:   "meeting <topic-file>...",
		Short: "Rebuild the topic tree of specific meetings",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.pipeline(nil)
			if err != nil {
				return err
			}

			failed := 0
			for _, topicPath := range args {
				res, err := p.RunMeeting(cmd.Context(), topicPath)
				if err != nil {
					a.log.Error(err)
					failed++
					continue
				}
				if stdout {
					if err := orchestrator.Encode(cmd.OutOrStdout(), a.cfg.Output, res.Topics); err != nil {
						return err
					}
					continue
				}
				path, err := p.WriteMeeting(res)
				if err != nil {
					return err
				}
				a.log.WithField("meeting", res.MeetingID).Infof("wrote %s", path)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d meetings failed", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&stdout, "stdout", false, "print the result instead of writing it to the output directory")
	return cmd
}
