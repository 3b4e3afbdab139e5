package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/iudanet/votekeeper/internal/client/resources"
	"github.com/iudanet/votekeeper/pkg/api"
)

func (c *Cli) districtsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "districts",
		Short: "List districts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := c.prepare(ctx); err != nil {
				return err
			}
			districts, err := c.resourceService(false).ListDistricts(ctx)
			if err != nil {
				return describeOffline(err)
			}

			w := c.table()
			fmt.Fprintln(w, "ID\tNAME\tPROVINCE\tCONSTITUENCIES")
			for _, d := range districts {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", d.ID, d.Name, d.Province, d.Constituencies)
			}
			return w.Flush()
		},
	}
}

func (c *Cli) partiesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parties",
		Short: "List and manage parties",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := c.prepare(ctx); err != nil {
				return err
			}
			parties, err := c.resourceService(false).ListParties(ctx)
			if err != nil {
				return describeOffline(err)
			}

			w := c.table()
			fmt.Fprintln(w, "ID\tSHORT\tNAME\tCOLOR")
			for _, p := range parties {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.ShortName, p.Name, p.Color)
			}
			return w.Flush()
		},
	}

	var (
		req            api.PartyRequest
		queueIfOffline bool
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a party",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := c.prepare(ctx); err != nil {
				return err
			}
			result, err := c.resourceService(queueIfOffline).CreateParty(ctx, req)
			if err != nil {
				return describeOffline(err)
			}
			return c.printWriteResult(result)
		},
	}
	add.Flags().StringVar(&req.Name, "name", "", "Party name")
	add.Flags().StringVar(&req.ShortName, "short", "", "Short name")
	add.Flags().StringVar(&req.Color, "color", "", "Map color (#RRGGBB)")
	add.Flags().BoolVar(&queueIfOffline, "queue", false, "Queue the change when the server is unreachable")
	_ = add.MarkFlagRequired("name")

	var deleteQueue bool
	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a party",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := c.prepare(ctx); err != nil {
				return err
			}
			result, err := c.resourceService(deleteQueue).DeleteParty(ctx, args[0])
			if err != nil {
				return describeOffline(err)
			}
			return c.printWriteResult(result)
		},
	}
	del.Flags().BoolVar(&deleteQueue, "queue", false, "Queue the change when the server is unreachable")

	cmd.AddCommand(add, del)
	return cmd
}

func (c *Cli) candidatesCommand() *cobra.Command {
	var filter resources.CandidateFilter
	cmd := &cobra.Command{
		Use:   "candidates",
		Short: "List and manage candidates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := c.prepare(ctx); err != nil {
				return err
			}
			candidates, err := c.resourceService(false).ListCandidates(ctx, filter)
			if err != nil {
				return describeOffline(err)
			}

			w := c.table()
			fmt.Fprintln(w, "ID\tNAME\tPARTY\tDISTRICT\tNO\tVOTES\tSTATUS")
			for _, cand := range candidates {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
					cand.ID, cand.Name, cand.PartyID, cand.DistrictID,
					cand.Constituency, humanize.Comma(cand.Votes), cand.Status)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&filter.DistrictID, "district", "", "Filter by district id")
	cmd.Flags().StringVar(&filter.PartyID, "party", "", "Filter by party id")
	cmd.Flags().IntVar(&filter.Constituency, "constituency", 0, "Filter by constituency number")

	var (
		req      api.CandidateRequest
		addQueue bool
		status   string
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Register a candidate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := c.prepare(ctx); err != nil {
				return err
			}
			req.Status = api.CandidateStatus(status)
			result, err := c.resourceService(addQueue).CreateCandidate(ctx, req)
			if err != nil {
				return describeOffline(err)
			}
			return c.printWriteResult(result)
		},
	}
	add.Flags().StringVar(&req.Name, "name", "", "Candidate name")
	add.Flags().StringVar(&req.PartyID, "party", "", "Party id (empty for independents)")
	add.Flags().StringVar(&req.DistrictID, "district", "", "District id")
	add.Flags().IntVar(&req.Constituency, "constituency", 1, "Constituency number")
	add.Flags().Int64Var(&req.Votes, "votes", 0, "Initial vote count")
	add.Flags().IntVar(&req.Age, "age", 0, "Candidate age")
	add.Flags().StringVar(&status, "status", string(api.CandidateStatusContesting), "Counting status")
	add.Flags().BoolVar(&addQueue, "queue", false, "Queue the change when the server is unreachable")
	_ = add.MarkFlagRequired("name")
	_ = add.MarkFlagRequired("district")

	var votesQueue bool
	votes := &cobra.Command{
		Use:   "votes <id> <count>",
		Short: "Update the vote count of a candidate",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil || count < 0 {
				return fmt.Errorf("invalid vote count %q", args[1])
			}
			ctx := cmd.Context()
			if err := c.prepare(ctx); err != nil {
				return err
			}

			svc := c.resourceService(votesQueue)
			// PUT заменяет запись целиком, поэтому берем текущую (при офлайне из кэша)
			cand, err := svc.GetCandidate(ctx, args[0])
			if err != nil {
				return describeOffline(err)
			}
			result, err := svc.UpdateCandidate(ctx, cand.ID, api.CandidateRequest{
				Name:         cand.Name,
				PartyID:      cand.PartyID,
				DistrictID:   cand.DistrictID,
				Status:       cand.Status,
				Constituency: cand.Constituency,
				Votes:        count,
				Age:          cand.Age,
			})
			if err != nil {
				return describeOffline(err)
			}
			return c.printWriteResult(result)
		},
	}
	votes.Flags().BoolVar(&votesQueue, "queue", false, "Queue the change when the server is unreachable")

	var deleteQueue bool
	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a candidate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := c.prepare(ctx); err != nil {
				return err
			}
			result, err := c.resourceService(deleteQueue).DeleteCandidate(ctx, args[0])
			if err != nil {
				return describeOffline(err)
			}
			return c.printWriteResult(result)
		},
	}
	del.Flags().BoolVar(&deleteQueue, "queue", false, "Queue the change when the server is unreachable")

	cmd.AddCommand(add, votes, del)
	return cmd
}

func (c *Cli) resultsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "results",
		Short: "Show live results per constituency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := c.prepare(ctx); err != nil {
				return err
			}
			results, err := c.resourceService(false).LiveResults(ctx)
			if err != nil {
				return describeOffline(err)
			}
			if !c.monitor.IsOnline() {
				c.io.Println("⚠️  Offline: showing cached results")
			}

			w := c.table()
			fmt.Fprintln(w, "DISTRICT\tNO\tLEADER\tPARTY\tVOTES\tTOTAL\tCANDIDATES")
			for _, r := range results {
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\t%d\n",
					r.DistrictID, r.Constituency, r.LeaderName, r.PartyID,
					humanize.Comma(r.LeaderVotes), humanize.Comma(r.TotalVotes), r.Candidates)
			}
			return w.Flush()
		},
	}
}

func (c *Cli) table() *tabwriter.Writer {
	return tabwriter.NewWriter(c.io, 0, 0, 2, ' ', 0)
}
