package form

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/atinyakov/RecipeShare/internal/models"
)

// ReadLine prints prompt to w and reads one trimmed line from reader. A
// final line without a newline is returned as is.
func ReadLine(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Prompt fills the form interactively. An empty answer keeps the current
// value, so the same walk serves both create and edit.
func (f *Form) Prompt(reader *bufio.Reader, w io.Writer) error {
	var err error
	if f.Title, err = ask(reader, w, "Title", f.Title); err != nil {
		return err
	}
	if f.Description, err = ask(reader, w, "Description", f.Description); err != nil {
		return err
	}
	if f.Image, err = ask(reader, w, "Image URL", f.Image); err != nil {
		return err
	}

	cuisine, err := choose(reader, w, "Cuisine", string(f.Cuisine), names(models.Cuisines))
	if err != nil {
		return err
	}
	f.Cuisine = models.Cuisine(cuisine)

	diet, err := choose(reader, w, "Type", string(f.Type), names(models.DietTypes))
	if err != nil {
		return err
	}
	f.Type = models.DietType(diet)

	meal, err := choose(reader, w, "Meal type", string(f.MealType), names(models.MealTypes))
	if err != nil {
		return err
	}
	f.MealType = models.MealType(meal)

	if err := f.promptSteps(reader, w); err != nil {
		return err
	}
	return f.promptIngredients(reader, w)
}

func (f *Form) promptSteps(reader *bufio.Reader, w io.Writer) error {
	fmt.Fprintln(w, "Steps (empty answer keeps the step, '-' removes it):")
	for i := 0; i < len(f.Steps); {
		text, err := ask(reader, w, fmt.Sprintf("  Step %d", i+1), f.Steps[i])
		if err != nil {
			return err
		}
		if text == "-" {
			_ = f.RemoveStep(i)
			continue
		}
		_ = f.SetStep(i, text)
		i++
	}
	for {
		text, err := ReadLine(reader, fmt.Sprintf("  Step %d (empty to finish): ", len(f.Steps)+1), w)
		if err != nil {
			return err
		}
		if text == "" {
			return nil
		}
		f.AddStep()
		_ = f.SetStep(len(f.Steps)-1, text)
	}
}

func (f *Form) promptIngredients(reader *bufio.Reader, w io.Writer) error {
	fmt.Fprintln(w, "Ingredient groups (heading '-' removes a group):")
	for i := 0; i < len(f.Ingredients); {
		g := f.Ingredients[i]
		heading, err := ask(reader, w, fmt.Sprintf("  Heading %d", i+1), g.Heading)
		if err != nil {
			return err
		}
		if heading == "-" {
			_ = f.RemoveIngredientGroup(i)
			continue
		}
		items, err := ask(reader, w, "  Items, comma separated", strings.Join(g.Items, ", "))
		if err != nil {
			return err
		}
		_ = f.SetHeading(i, heading)
		_ = f.SetItems(i, items)
		i++
	}
	for {
		heading, err := ReadLine(reader, fmt.Sprintf("  Heading %d (empty to finish): ", len(f.Ingredients)+1), w)
		if err != nil {
			return err
		}
		if heading == "" {
			return nil
		}
		items, err := ReadLine(reader, "  Items, comma separated: ", w)
		if err != nil {
			return err
		}
		f.AddIngredientGroup()
		last := len(f.Ingredients) - 1
		_ = f.SetHeading(last, heading)
		_ = f.SetItems(last, items)
	}
}

// ask reads a value, returning current when the answer is empty.
func ask(reader *bufio.Reader, w io.Writer, label, current string) (string, error) {
	prompt := label + ": "
	if current != "" {
		prompt = fmt.Sprintf("%s [%s]: ", label, current)
	}
	text, err := ReadLine(reader, prompt, w)
	if err != nil {
		return "", err
	}
	if text == "" {
		return current, nil
	}
	return text, nil
}

// choose reads one of options, by name or 1-based number, until the answer
// is valid.
func choose(reader *bufio.Reader, w io.Writer, label, current string, options []string) (string, error) {
	for {
		text, err := ask(reader, w, fmt.Sprintf("%s (%s)", label, strings.Join(options, "/")), current)
		if err != nil {
			return "", err
		}
		for i, o := range options {
			if strings.EqualFold(text, o) || text == fmt.Sprint(i+1) {
				return o, nil
			}
		}
		fmt.Fprintf(w, "  %q is not one of %s\n", text, strings.Join(options, ", "))
	}
}

func names[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
