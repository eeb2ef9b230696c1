package provisioner

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/windsorcli/boxctl/pkg/workstation/virt"
)

// The selector offers the containers and images of the box as a numbered list and turns
// the user's pick into docker CLI arguments.

// =============================================================================
// Types
// =============================================================================

// ChoiceKind tells containers from images
type ChoiceKind string

const (
	ChoiceContainer ChoiceKind = "container"
	ChoiceImage     ChoiceKind = "image"
)

// Choice is one selectable entry. Ref is what docker is given: the container ID, the image
// tag or, for untagged images, the image ID.
type Choice struct {
	Kind  ChoiceKind
	Ref   string
	Label string
	Keys  []string
}

// =============================================================================
// Public Functions
// =============================================================================

// BuildChoices lists containers first, then images
func BuildChoices(containers []virt.Container, images []virt.Image) []Choice {
	var choices []Choice
	for _, c := range containers {
		choices = append(choices, Choice{
			Kind:  ChoiceContainer,
			Ref:   c.ID,
			Label: fmt.Sprintf("container %s %s (%s, %s)", c.ID, c.Name, c.Image, c.Status),
			Keys:  []string{c.ID, c.Name},
		})
	}
	for _, img := range images {
		ref := img.Tag
		keys := []string{img.ID, img.Tag}
		if img.Tag == "" || img.Tag == "<none>:<none>" {
			ref = img.ID
			keys = []string{img.ID}
		}
		choices = append(choices, Choice{
			Kind:  ChoiceImage,
			Ref:   ref,
			Label: fmt.Sprintf("image     %s %s", img.ID, img.Tag),
			Keys:  keys,
		})
	}
	return choices
}

// Select prints the numbered choices to out and reads one answer from in. An answer is
// either a list number or an exact container ID, container name, image ID or image tag.
func Select(in io.Reader, out io.Writer, choices []Choice) (Choice, error) {
	if len(choices) == 0 {
		return Choice{}, fmt.Errorf("no containers or images to choose from")
	}

	for i, choice := range choices {
		fmt.Fprintf(out, "%3d) %s\n", i+1, choice.Label)
	}
	fmt.Fprint(out, "Select a container or image: ")

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && (err != io.EOF || answer == "") {
		return Choice{}, fmt.Errorf("error reading selection: %w", err)
	}
	answer = strings.TrimSpace(answer)

	if n, err := strconv.Atoi(answer); err == nil {
		if n < 1 || n > len(choices) {
			return Choice{}, fmt.Errorf("selection %d is out of range 1-%d", n, len(choices))
		}
		return choices[n-1], nil
	}

	for _, choice := range choices {
		for _, key := range choice.Keys {
			if key != "" && key == answer {
				return choice, nil
			}
		}
	}
	return Choice{}, fmt.Errorf("no container or image matches %q", answer)
}

// ExecArgs returns the docker arguments that open command in the choice: exec for a
// container, a throwaway run for an image. Command arguments are passed as given.
func ExecArgs(choice Choice, command []string) []string {
	var args []string
	switch choice.Kind {
	case ChoiceContainer:
		args = []string{"exec", "-it", choice.Ref}
	default:
		args = []string{"run", "--rm", "-it", choice.Ref}
	}
	return append(args, command...)
}
